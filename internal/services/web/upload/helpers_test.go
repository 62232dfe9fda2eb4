package upload

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func cmpIgnoreTime() cmp.Option {
	return cmpopts.IgnoreFields(Progress{}, "UpdatedAt")
}
