package membership

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the mealtype and weekday tags to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("mealtype", func(fl validator.FieldLevel) bool {
			return MealType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			return Weekday(fl.Field().String()).Valid()
		})
	})
}
