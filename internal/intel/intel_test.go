package intel

import (
	"testing"

	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/skills"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		company      string
		wantSize     string
		wantIndustry string
		wantFocus    string
	}{
		{"empty", "", model.SizeStartup, defaultIndustry, startupFocus},
		{"whitespace", "   ", model.SizeStartup, defaultIndustry, startupFocus},
		{"known enterprise", "Google", model.SizeEnterprise, defaultIndustry, enterpriseFocus},
		{"enterprise substring with padding", "  Goldman Sachs India ", model.SizeEnterprise, defaultIndustry, enterpriseFocus},
		{"bank", "ABC Bank", model.SizeEnterprise, bankingIndustry, bankingFocus},
		{"financial", "Acme Financial Services", model.SizeEnterprise, bankingIndustry, bankingFocus},
		{"enterprise list wins over bank", "JPMorgan Chase Bank", model.SizeEnterprise, defaultIndustry, enterpriseFocus},
		{"explicit startup", "Tiny Startup Labs", model.SizeStartup, defaultIndustry, startupFocus},
		{"unknown", "Zomato", model.SizeStartup, defaultIndustry, startupFocus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.company)
			if got.Size != tt.wantSize {
				t.Errorf("Size = %q, want %q", got.Size, tt.wantSize)
			}
			if got.Industry != tt.wantIndustry {
				t.Errorf("Industry = %q, want %q", got.Industry, tt.wantIndustry)
			}
			if got.Focus != tt.wantFocus {
				t.Errorf("Focus = %q, want %q", got.Focus, tt.wantFocus)
			}
		})
	}
}

func TestMapRounds_Enterprise(t *testing.T) {
	rounds := MapRounds(skills.Extract("React"), Classify("Microsoft"))
	assertRoundTypes(t, rounds)

	if rounds[0].RoundTitle != "Online Assessment" {
		t.Errorf("screening = %q", rounds[0].RoundTitle)
	}
	if rounds[1].RoundTitle != "Technical Round 1 (DSA)" {
		t.Errorf("technical = %q", rounds[1].RoundTitle)
	}
	if rounds[2].RoundTitle != "System Design / Low Level Design" {
		t.Errorf("design = %q", rounds[2].RoundTitle)
	}
}

func TestMapRounds_Startup(t *testing.T) {
	rounds := MapRounds(skills.Extract("React and Node.js"), Classify("Acme"))
	assertRoundTypes(t, rounds)

	if rounds[0].RoundTitle != "Screening / Take-home" {
		t.Errorf("screening = %q", rounds[0].RoundTitle)
	}
	if rounds[1].RoundTitle != "Machine Coding (REACT)" {
		t.Errorf("technical = %q", rounds[1].RoundTitle)
	}
	if rounds[1].Description != "Build a small feature using react in 1 hour" {
		t.Errorf("technical description = %q", rounds[1].Description)
	}
	if rounds[2].RoundTitle != "Architecture & Discussion" {
		t.Errorf("design = %q", rounds[2].RoundTitle)
	}
}

func TestMapRounds_StartupFallbackSkill(t *testing.T) {
	rounds := MapRounds(skills.Extract("good communication"), Classify(""))
	if rounds[1].RoundTitle != "Machine Coding (CODING)" {
		t.Errorf("technical = %q", rounds[1].RoundTitle)
	}
}

func TestMapRounds_BehavioralShared(t *testing.T) {
	ent := MapRounds(skills.Extract(""), Classify("IBM"))
	st := MapRounds(skills.Extract(""), Classify("Acme"))
	if ent[3].RoundTitle != st[3].RoundTitle || ent[3].Rationale != st[3].Rationale {
		t.Errorf("behavioral rounds differ: %+v vs %+v", ent[3], st[3])
	}
}

func assertRoundTypes(t *testing.T, rounds []model.RoundMappingEntry) {
	t.Helper()
	want := []string{TypeScreening, TypeTechnical, TypeDesign, TypeBehavioral}
	if len(rounds) != len(want) {
		t.Fatalf("len(rounds) = %d, want %d", len(rounds), len(want))
	}
	for i, w := range want {
		if rounds[i].Type != w {
			t.Errorf("rounds[%d].Type = %q, want %q", i, rounds[i].Type, w)
		}
		if len(rounds[i].FocusAreas) == 0 {
			t.Errorf("rounds[%d] has no focus areas", i)
		}
	}
}
