// Package intel classifies employers and maps the interview rounds to expect.
package intel

import (
	"strings"

	"github.com/amishk599/jdprep/internal/model"
)

const (
	defaultIndustry = "Technology"
	bankingIndustry = "FinTech / Banking"

	startupFocus    = "Rapid feature development, Full-stack ownership, Practical problem solving"
	enterpriseFocus = "Scalability, System Design, Core CS fundamentals, Optimization"
	bankingFocus    = "Security, Transaction consistency, High availability"
)

// KnownEnterprises are matched as substrings of the normalized company name.
// Short entries such as "ey" therefore also hit unrelated names.
var KnownEnterprises = []string{
	"google", "amazon", "facebook", "meta", "apple", "netflix", "microsoft",
	"tcs", "infosys", "wipro", "accenture", "cognizant", "capgemini",
	"jpmorgan", "goldman sachs", "morgan stanley", "adobe", "salesforce",
	"oracle", "ibm", "cisco", "intel", "nvidia", "uber", "airbnb", "stripe",
	"deloitte", "pwc", "ey", "kpmg",
}

// Classify derives size, industry and focus from a company name. The first
// matching rule wins: known enterprise, then bank/financial, then startup.
func Classify(companyName string) model.CompanyIntel {
	ci := model.CompanyIntel{
		Size:     model.SizeStartup,
		Industry: defaultIndustry,
		Focus:    startupFocus,
	}

	name := strings.ToLower(strings.TrimSpace(companyName))
	if name == "" {
		return ci
	}

	switch {
	case containsAny(name, KnownEnterprises):
		ci.Size = model.SizeEnterprise
		ci.Focus = enterpriseFocus
	case strings.Contains(name, "bank") || strings.Contains(name, "financial"):
		ci.Size = model.SizeEnterprise
		ci.Industry = bankingIndustry
		ci.Focus = bankingFocus
	case strings.Contains(name, "startup"):
		ci.Size = model.SizeStartup
	}
	return ci
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
