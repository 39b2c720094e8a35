package forms

// form31Definition returns the static definition for Form 31, Proof of Claim
// (BIA s.124, prescribed by the Office of the Superintendent of Bankruptcy).
func form31Definition() *FormDefinition {
	return &FormDefinition{
		FormNumber: "31",
		Title:      "Proof of Claim",
		Sections: []FormSection{
			{
				Name: "Debtor Information",
				Fields: []FormField{
					{
						Name:     "clientName",
						Label:    "Name of Debtor",
						Required: true,
						Metadata: &FieldMetadata{
							LegalSchema:    "BIA s.124(1)",
							RiskIndicators: []string{"identity_mismatch"},
						},
					},
					{
						Name:  "isCompany",
						Label: "Debtor is a Corporation",
					},
					{
						Name:  "clientAddress",
						Label: "Address of Debtor",
					},
					{
						Name:  "estateNumber",
						Label: "Estate Number",
						Metadata: &FieldMetadata{
							LegalSchema: "BIA General Rules, Rule 3",
						},
					},
					{
						Name:  "district",
						Label: "Bankruptcy District",
					},
				},
			},
			{
				Name: "Creditor Information",
				Fields: []FormField{
					{
						Name:     "creditorName",
						Label:    "Name of Creditor",
						Required: true,
						Metadata: &FieldMetadata{
							LegalSchema:    "BIA s.124(2)",
							RiskIndicators: []string{"unverified_creditor"},
						},
					},
					{
						Name:  "creditorAddress",
						Label: "Address of Creditor",
					},
					{
						Name:  "claimType",
						Label: "Type of Claim",
					},
					{
						// Included only for secured claims; the security must
						// be valued before the claim can be admitted.
						Name:     "securityValue",
						Label:    "Value of Security Held",
						Required: true,
						Condition: &FieldCondition{
							Field: "claimType",
							Value: "secured",
						},
						Rules: []FieldRule{currencyRule("securityValue")},
						Metadata: &FieldMetadata{
							LegalSchema:    "BIA s.128(1)",
							RiskIndicators: []string{"unvalued_security"},
						},
					},
					{
						// Any claim other than a plain unsecured one must
						// describe its basis.
						Name:  "securityDetails",
						Label: "Particulars of Security",
						Condition: &FieldCondition{
							Field:    "claimType",
							Value:    "unsecured",
							Operator: OperatorNotEquals,
						},
					},
				},
			},
			{
				Name: "Statement of Claim",
				Fields: []FormField{
					{
						Name:     "totalDebts",
						Label:    "Total Amount of Claim",
						Required: true,
						Rules:    []FieldRule{currencyRule("totalDebts")},
						Metadata: &FieldMetadata{
							LegalSchema:    "BIA s.124(4)",
							RiskIndicators: []string{"undocumented_amount"},
						},
					},
					{
						Name:  "priorityClaimed",
						Label: "Priority Claimed Under s.136",
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
						Name:  "trusteeName",
						Label: "Licensed Insolvency Trustee",
					},
				},
			},
		},
		FormRules: []FormRule{
			{
				Name:     "claim_amount_positive",
				Severity: SeverityHigh,
				Message:  "Total amount of claim must be greater than zero",
				Check: func(data map[string]string) bool {
					amount, ok := ParseAmount(data["totalDebts"])
					if !ok {
						return true
					}
					return amount > 0
				},
			},
			{
				Name:     "security_within_claim",
				Severity: SeverityMedium,
				Message:  "Value of security held should not exceed the total claim",
				Check: func(data map[string]string) bool {
					security, okS := ParseAmount(data["securityValue"])
					total, okT := ParseAmount(data["totalDebts"])
					if !okS || !okT {
						return true
					}
					return security <= total
				},
			},
		},
	}
}
