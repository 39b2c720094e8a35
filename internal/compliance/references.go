package compliance

// legalReference pairs a citation with its plain-language description.
type legalReference struct {
	Reference   string
	Description string
}

// biaReferences maps each check to its Bankruptcy and Insolvency Act
// citation. Static lookup table; never mutated.
var biaReferences = map[RiskType]legalReference{
	RiskTypeFinancialDisclosure: {
		Reference:   "BIA s.158(d)",
		Description: "Duty of the debtor to make full disclosure of property, assets and liabilities",
	},
	RiskTypeSignature: {
		Reference:   "BIA s.124(2)",
		Description: "A proof of claim shall be made in the prescribed form and signed by the creditor or a person authorized on the creditor's behalf",
	},
	RiskTypeCreditorInformation: {
		Reference:   "BIA s.102(2)",
		Description: "The trustee shall send notice of the meeting of creditors together with a list of creditors and the amounts of their claims",
	},
	RiskTypeNoticeTiming: {
		Reference:   "BIA s.102(1)",
		Description: "Notice of the first meeting of creditors must precede the meeting by the prescribed interval",
	},
	RiskTypeProcedural: {
		Reference:   "BIA General Rules, Rule 3",
		Description: "Documents filed with the court or the official receiver must use the prescribed forms and identify the estate and the bankruptcy district",
	},
}

// osbDirectives maps each check to the relevant Office of the
// Superintendent of Bankruptcy directive.
var osbDirectives = map[RiskType]legalReference{
	RiskTypeFinancialDisclosure: {
		Reference:   "OSB Directive 6R3",
		Description: "Assessment of an Individual Debtor",
	},
	RiskTypeSignature: {
		Reference:   "OSB Directive 26",
		Description: "Electronic Filing and Signature of Insolvency Documents",
	},
	RiskTypeCreditorInformation: {
		Reference:   "OSB Directive 16R",
		Description: "Preparation of the Statement of Affairs and Creditor Listings",
	},
	RiskTypeNoticeTiming: {
		Reference:   "OSB Directive 10",
		Description: "Notices to Creditors and Convening of Meetings",
	},
	RiskTypeProcedural: {
		Reference:   "OSB Directive 19",
		Description: "Estate Identification and Filing Requirements",
	},
}
