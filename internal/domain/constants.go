package domain

// Default contract details values (редактируются владельцем до генерации документа)
const (
	DefaultPaymentDay       = 5
	DefaultIncludedServices = "Water, electricity, internet (example, editable)."
	DefaultRules            = "1. The student agrees to respect the internal rules of the residence.\n" +
		"2. Loud parties are not allowed after 22:00.\n" +
		"3. Keep common areas clean and tidy.\n"
)

// Business validation constants
const (
	MinPaymentDay   = 1
	MaxPaymentDay   = 31
	MaxTitleLength  = 255
	MaxTextLength   = 5000
	MinMonthlyPrice = 0
)

// Format constants
const (
	DateFormat         = "2006-01-02" // YYYY-MM-DD
	DocumentDateFormat = "02/01/2006" // DD/MM/YYYY
	DocumentTimeFormat = "02/01/2006 15:04"
)

// DocumentsURLPrefix публичный префикс, под которым раздаются сгенерированные документы
const DocumentsURLPrefix = "/generated_contracts/"
