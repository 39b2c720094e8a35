package extraction

import "regexp"

func mustPatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// formTypePatterns is the detection priority list. Order matters: the first
// matching pattern routes the document, so the specific forms come before
// anything that could shadow them.
var formTypePatterns = []formTypePattern{
	{
		Pattern:    regexp.MustCompile(`(?i)\bform\s*[-_ ]?\s*31\b|\bproof\s+of\s+claim\b`),
		FormType:   FormTypeProofOfClaim,
		FormNumber: "31",
	},
	{
		Pattern:    regexp.MustCompile(`(?i)\bform\s*[-_ ]?\s*47\b|\bconsumer\s+proposal\b`),
		FormType:   FormTypeConsumerProposal,
		FormNumber: "47",
	},
}

// getForm31Patterns returns the ordered field patterns for Form 31 text.
func getForm31Patterns() []FieldPattern {
	return []FieldPattern{
		{
			Field: "clientName",
			Patterns: mustPatterns(
				`(?i)name\s+of\s+debtor\s*:?\s*([^\n]+)`,
				`(?i)in\s+the\s+matter\s+of\s+the\s+(?:bankruptcy|proposal|receivership)\s+of\s+([^\n,]+)`,
				`(?i)\bdebtor\s*:\s*([^\n]+)`,
				`(?i)\bre\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "clientAddress",
			Patterns: mustPatterns(
				`(?i)address\s+of\s+(?:the\s+)?debtor\s*:?\s*([^\n]+(?:\n[^\n:]+)?)`,
				`(?i)debtor(?:'s)?\s+address\s*:?\s*([^\n]+(?:\n[^\n:]+)?)`,
			),
			Normalize: normalizeAddress,
		},
		{
			Field: "creditorName",
			Patterns: mustPatterns(
				`(?i)name\s+of\s+creditor\s*:?\s*([^\n]+)`,
				`(?i)\bcreditor\s*:\s*([^\n]+)`,
				`(?i)claim\s+of\s+([^\n,]+)`,
			),
		},
		{
			Field: "creditorAddress",
			Patterns: mustPatterns(
				`(?i)address\s+of\s+(?:the\s+)?creditor\s*:?\s*([^\n]+(?:\n[^\n:]+)?)`,
			),
			Normalize: normalizeAddress,
		},
		{
			Field: "claimType",
			Patterns: mustPatterns(
				`(?i)(?:type\s+of\s+claim|claim\s+type)\s*:?\s*([a-z]+)`,
				`(?i)\b(unsecured|secured|priority|wage)\s+claim\b`,
			),
			Normalize: normalizeLower,
		},
		{
			Field: "securityValue",
			Patterns: mustPatterns(
				`(?i)value\s+of\s+(?:the\s+)?security\s*(?:held)?\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`,
			),
			Normalize: normalizeCurrency,
		},
		{
			Field: "totalDebts",
			Patterns: mustPatterns(
				`(?i)total\s+(?:amount\s+of\s+)?(?:the\s+)?(?:claim|debts?|indebtedness)\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`,
				`(?i)amount\s+(?:owing|claimed)\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`,
			),
			Normalize: normalizeCurrency,
		},
		{
			Field: "dateSigned",
			Patterns: mustPatterns(
				`(?i)date\s+signed\s*:?\s*([^\n]+)`,
				`(?i)dated\s+at\s+[^,\n]+[,\s]+this\s+([^\n]+)`,
				`(?i)signed\s+on\s*:?\s*([^\n]+)`,
			),
		},
		{
			Field: "trusteeName",
			Patterns: mustPatterns(
				`(?i)licensed\s+insolvency\s+trustee\s*:?\s*([^\n]+)`,
				`(?i)\btrustee\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "estateNumber",
			Patterns: mustPatterns(
				`(?i)estate\s+(?:no\.?|number)\s*:?\s*([\w-]+)`,
			),
		},
		{
			Field: "district",
			Patterns: mustPatterns(
				`(?i)(?:bankruptcy\s+)?district\s+of\s*:?\s*([^\n,]+)`,
				`(?i)district\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "meetingDate",
			Patterns: mustPatterns(
				`(?i)meeting\s+of\s+creditors\s+(?:will\s+be\s+held\s+)?on\s*:?\s*([^\n]+)`,
				`(?i)meeting\s+date\s*:?\s*([^\n]+)`,
			),
		},
		{
			Field: "documentDate",
			Patterns: mustPatterns(
				`(?i)document\s+date\s*:?\s*([^\n]+)`,
				`(?i)date\s+of\s+(?:this\s+)?(?:notice|document)\s*:?\s*([^\n]+)`,
			),
		},
	}
}

// getForm47Patterns returns the ordered field patterns for Form 47 text.
func getForm47Patterns() []FieldPattern {
	return []FieldPattern{
		{
			Field: "clientName",
			Patterns: mustPatterns(
				`(?i)(?:name\s+of\s+)?consumer\s+debtor\s*:?\s*([^\n]+)`,
				`(?i)name\s+of\s+debtor\s*:?\s*([^\n]+)`,
				`(?i)\bdebtor\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "clientAddress",
			Patterns: mustPatterns(
				`(?i)address\s+of\s+(?:the\s+)?(?:consumer\s+)?debtor\s*:?\s*([^\n]+(?:\n[^\n:]+)?)`,
			),
			Normalize: normalizeAddress,
		},
		{
			Field: "administratorName",
			Patterns: mustPatterns(
				`(?i)administrator\s+of\s+the\s+consumer\s+proposal\s*:?\s*([^\n]+)`,
				`(?i)\badministrator\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "totalDebts",
			Patterns: mustPatterns(
				`(?i)total\s+(?:amount\s+of\s+)?(?:debts?|indebtedness)\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`,
			),
			Normalize: normalizeCurrency,
		},
		{
			Field: "monthlyPayment",
			Patterns: mustPatterns(
				`(?i)monthly\s+payments?\s*(?:of|to\s+the\s+administrator)?\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`,
				`(?i)pay\s+\$?\s*([\d,]+(?:\.\d{1,2})?)\s+(?:per\s+month|monthly)`,
			),
			Normalize: normalizeCurrency,
		},
		{
			Field: "proposalDuration",
			Patterns: mustPatterns(
				`(?i)(?:duration|term)\s+of\s+(?:the\s+)?proposal\s*:?\s*(\d+)`,
				`(?i)(\d+)\s+monthly\s+payments`,
				`(?i)over\s+(?:a\s+period\s+of\s+)?(\d+)\s+months`,
			),
		},
		{
			Field: "firstPaymentDate",
			Patterns: mustPatterns(
				`(?i)first\s+payment\s*(?:date|on|due)?\s*:?\s*([^\n]+)`,
			),
		},
		{
			Field: "dateSigned",
			Patterns: mustPatterns(
				`(?i)date\s+signed\s*:?\s*([^\n]+)`,
				`(?i)dated\s+at\s+[^,\n]+[,\s]+this\s+([^\n]+)`,
			),
		},
		{
			Field: "trusteeName",
			Patterns: mustPatterns(
				`(?i)licensed\s+insolvency\s+trustee\s*:?\s*([^\n]+)`,
				`(?i)\btrustee\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "estateNumber",
			Patterns: mustPatterns(
				`(?i)estate\s+(?:no\.?|number)\s*:?\s*([\w-]+)`,
			),
		},
		{
			Field: "district",
			Patterns: mustPatterns(
				`(?i)(?:bankruptcy\s+)?district\s+of\s*:?\s*([^\n,]+)`,
			),
		},
	}
}

// getGenericPatterns returns the fallback patterns applied when no known
// form was detected.
func getGenericPatterns() []FieldPattern {
	return []FieldPattern{
		{
			Field: "clientName",
			Patterns: mustPatterns(
				`(?i)name\s+of\s+debtor\s*:?\s*([^\n]+)`,
				`(?i)\bdebtor\s*:\s*([^\n]+)`,
				`(?i)\bclient\s*:\s*([^\n]+)`,
				`(?i)\bre\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "totalDebts",
			Patterns: mustPatterns(
				`(?i)total\s+(?:amount\s+of\s+)?(?:debts?|claim|indebtedness|liabilities)\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`,
			),
			Normalize: normalizeCurrency,
		},
		{
			Field: "dateSigned",
			Patterns: mustPatterns(
				`(?i)date\s+signed\s*:?\s*([^\n]+)`,
				`(?i)dated\s+at\s+[^,\n]+[,\s]+this\s+([^\n]+)`,
			),
		},
		{
			Field: "trusteeName",
			Patterns: mustPatterns(
				`(?i)licensed\s+insolvency\s+trustee\s*:?\s*([^\n]+)`,
				`(?i)\btrustee\s*:\s*([^\n]+)`,
			),
		},
		{
			Field: "estateNumber",
			Patterns: mustPatterns(
				`(?i)estate\s+(?:no\.?|number)\s*:?\s*([\w-]+)`,
			),
		},
		{
			Field: "district",
			Patterns: mustPatterns(
				`(?i)(?:bankruptcy\s+)?district\s+of\s*:?\s*([^\n,]+)`,
			),
		},
		{
			Field: "meetingDate",
			Patterns: mustPatterns(
				`(?i)meeting\s+of\s+creditors\s+(?:will\s+be\s+held\s+)?on\s*:?\s*([^\n]+)`,
			),
		},
	}
}
