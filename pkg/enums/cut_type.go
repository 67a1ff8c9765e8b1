package enums

// CutType is the preparation style presented to customers. The set below is
// what the storefront offers; carts and orders accept free-form values so a
// new presentation option never blocks a write.
type CutType string

const (
	CutTypeFull     CutType = "full"
	CutTypeCurry    CutType = "curry"
	CutTypeBiryani  CutType = "biryani"
	CutTypeBoneless CutType = "boneless"
)

var presentedCutTypes = []CutType{
	CutTypeFull,
	CutTypeCurry,
	CutTypeBiryani,
	CutTypeBoneless,
}

// PresentedCutTypes returns the cut styles offered in the order composer.
func PresentedCutTypes() []CutType {
	out := make([]CutType, len(presentedCutTypes))
	copy(out, presentedCutTypes)
	return out
}

// String implements fmt.Stringer.
func (c CutType) String() string {
	return string(c)
}
