package criteria

import (
	"github.com/MezMezMezMez/P2/service/dao"
)

// FilterBySlot reports whether a record owned by the given instance slot
// passes the supplied parameters. An empty parameter list matches everything.
func FilterBySlot(slot int, parameters []*dao.Parameter) bool {
	switch len(parameters) {
	case 0:
		return true
	case 1:
		if parameters[0].Name == "Slot" {
			switch actual := parameters[0].Value.(type) {
			case int:
				return slot == actual
			case []interface{}:
				for _, candidate := range actual {
					if v, ok := candidate.(int); ok && slot == v {
						return true
					}
				}
				return false
			}
		}
	}
	return true
}
