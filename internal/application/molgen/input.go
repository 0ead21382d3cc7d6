package molgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/turtacn/molgen/pkg/errors"
)

// ParseFunctionalGroups splits raw "fragment:index" tokens separated by
// commas. Tokens without a colon are dropped; extra colon-separated parts
// are ignored. Fragment and index are trimmed. A non-integer index is an
// input error. Range and fragment syntax are left to the builder.
func ParseFunctionalGroups(raw string) ([]FunctionalGroupSpec, error) {
	tokens := lo.Filter(strings.Split(raw, ","), func(tok string, _ int) bool {
		return strings.Contains(tok, ":")
	})

	specs := make([]FunctionalGroupSpec, 0, len(tokens))
	for _, tok := range tokens {
		parts := strings.Split(tok, ":")
		idx, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, errors.New(errors.ErrCodeFunctionalGroupBadIndex, "invalid functional group index").
				WithDetail(fmt.Sprintf("%q in %q", strings.TrimSpace(parts[1]), strings.TrimSpace(tok))).
				WithCause(err)
		}
		specs = append(specs, FunctionalGroupSpec{
			Fragment: strings.TrimSpace(parts[0]),
			Index:    idx,
		})
	}
	return specs, nil
}

// CollectForm reads the form fields into a request.
func CollectForm(in FormInput) (*GenerateRequest, error) {
	groups, err := ParseFunctionalGroups(in.FunctionalGroups)
	if err != nil {
		return nil, err
	}
	return &GenerateRequest{
		BaseSMILES: strings.TrimSpace(in.BaseSMILES),
		Groups:     groups,
		Desired: DesiredProperties{
			LogP:  strings.TrimSpace(in.Desired.LogP),
			Sigma: strings.TrimSpace(in.Desired.Sigma),
			Pi:    strings.TrimSpace(in.Desired.Pi),
			HBA:   strings.TrimSpace(in.Desired.HBA),
			HBD:   strings.TrimSpace(in.Desired.HBD),
		},
	}, nil
}

//Personal.AI order the ending
