package server

import (
	"activity-game/internal/game"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// guessmethod validates a method name field against the known enumeration.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("guessmethod", func(fl validator.FieldLevel) bool {
			_, err := game.ParseMethodType(fl.Field().String())
			return err == nil
		})
	}
}
