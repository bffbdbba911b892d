// Hand-maintained in the shape "go generate" with enumer would emit;
// keep in sync with the Kind constants.

package token

import "fmt"

const kindName = "AttributeTypeValueTextValueBase64ValueFinishEntryFinish"

var kindIndex = [...]uint8{0, 13, 22, 33, 44, 55}

func (k Kind) String() string {
	if k >= Kind(len(kindIndex)-1) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindName[kindIndex[k]:kindIndex[k+1]]
}

var kindValues = map[string]Kind{
	"AttributeType": AttributeType,
	"ValueText":     ValueText,
	"ValueBase64":   ValueBase64,
	"ValueFinish":   ValueFinish,
	"EntryFinish":   EntryFinish,
}

// ParseKind parses the String() form back into a Kind.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindValues[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("token: %q is not a valid Kind", s)
}
