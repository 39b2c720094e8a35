package forms

// form47Definition returns the static definition for Form 47, Consumer
// Proposal (BIA s.66.13).
func form47Definition() *FormDefinition {
	return &FormDefinition{
		FormNumber: "47",
		Title:      "Consumer Proposal",
		Sections: []FormSection{
			{
				Name: "Debtor Information",
				Fields: []FormField{
					{
						Name:     "clientName",
						Label:    "Name of Consumer Debtor",
						Required: true,
						Metadata: &FieldMetadata{
							LegalSchema:    "BIA s.66.13(1)",
							RiskIndicators: []string{"identity_mismatch"},
						},
					},
					{
						Name:  "clientAddress",
						Label: "Address of Consumer Debtor",
					},
					{
						Name:  "occupation",
						Label: "Occupation",
					},
				},
			},
			{
				Name: "Administrator",
				Fields: []FormField{
					{
						Name:     "administratorName",
						Label:    "Administrator of the Consumer Proposal",
						Required: true,
						Metadata: &FieldMetadata{
							LegalSchema:    "BIA s.66.13(2)(a)",
							RiskIndicators: []string{"unlicensed_administrator"},
						},
					},
					{
						Name:  "administratorAddress",
						Label: "Address of Administrator",
					},
				},
			},
			{
				Name: "Proposal Terms",
				Fields: []FormField{
					{
						Name:     "totalDebts",
						Label:    "Total Indebtedness",
						Required: true,
						Rules: []FieldRule{
							currencyRule("totalDebts"),
							{
								// Consumer proposals are only available below
								// the s.66.11 ceiling, excluding the mortgage
								// on a principal residence.
								Name:     "totalDebts_eligibility_ceiling",
								Severity: SeverityCritical,
								Message:  "Total indebtedness exceeds the $250,000 consumer proposal limit",
								Check:    checkAmountAtMost(250000),
							},
						},
						Metadata: &FieldMetadata{
							LegalSchema:    "BIA s.66.11",
							RiskIndicators: []string{"eligibility_exceeded"},
						},
					},
					{
						Name:     "monthlyPayment",
						Label:    "Monthly Payment to the Administrator",
						Required: true,
						Rules:    []FieldRule{currencyRule("monthlyPayment")},
					},
					{
						Name:  "proposalDuration",
						Label: "Duration of Proposal (months)",
						Rules: []FieldRule{
							{
								Name:     "proposalDuration_numeric",
								Severity: SeverityMedium,
								Message:  "must be a whole number of months",
								Check:    checkNumeric,
							},
							{
								// s.66.12(5): performance must complete within
								// five years of filing.
								Name:     "proposalDuration_max_term",
								Severity: SeverityHigh,
								Message:  "Proposal duration may not exceed 60 months",
								Check: func(value string, _ map[string]string) bool {
									if value == "" {
										return true
									}
									months, ok := ParseAmount(value)
									if !ok {
										return true
									}
									return months <= 60
								},
							},
						},
					},
					{
						Name:  "firstPaymentDate",
						Label: "Date of First Payment",
						Rules: []FieldRule{dateRule("firstPaymentDate")},
					},
					{
						Name:  "hasSecuredCreditors",
						Label: "Proposal Affects Secured Creditors",
					},
					{
						// Only relevant when secured creditors are affected.
						Name:  "securedCreditorTreatment",
						Label: "Treatment of Secured Creditors",
						Condition: &FieldCondition{
							Field: "hasSecuredCreditors",
							Value: "true",
						},
					},
				},
			},
			{
				Name: "Execution",
				Fields: []FormField{
					{
						Name:     "dateSigned",
						Label:    "Date Signed",
						Required: true,
						Rules:    []FieldRule{dateRule("dateSigned")},
					},
					{
						Name:  "witnessName",
						Label: "Witness",
					},
				},
			},
		},
		FormRules: []FormRule{
			{
				Name:     "first_payment_after_signing",
				Severity: SeverityHigh,
				Message:  "First payment date precedes the date the proposal was signed",
				Check: func(data map[string]string) bool {
					signed, okS := ParseDate(data["dateSigned"])
					first, okF := ParseDate(data["firstPaymentDate"])
					if !okS || !okF {
						return true
					}
					return !first.Before(signed)
				},
			},
		},
	}
}
