package providers

import (
	"errors"

	"github.com/gookit/validate"

	"cjd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct-tag rules over the whole config tree and
// returns the first collected error.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if v.Validate() {
		return nil
	}
	return errors.New(v.Errors.One())
}
