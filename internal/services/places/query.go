package places

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/apteka/internal/models"
)

// osmValuePattern matches plain OSM tag values ("pharmacy", "fast_food", "doctors;pharmacy")
var osmValuePattern = regexp.MustCompile(`^[a-z0-9_:;.-]+$`)

// SearchRequest holds the parameters of a bounded-area amenity query
type SearchRequest struct {
	Center   models.Coordinate
	Radius   int    `validate:"gt=0"`
	Category string `validate:"required,osmvalue"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("osmvalue", func(fl validator.FieldLevel) bool {
		return osmValuePattern.MatchString(fl.Field().String())
	})
	return v
}

// BuildQuery renders the Overpass QL query for the request.
// timeout is the server-side [timeout:N] in seconds, omitted when <= 0.
func BuildQuery(req SearchRequest, timeout int) string {
	header := "[out:json]"
	if timeout > 0 {
		header += fmt.Sprintf("[timeout:%d]", timeout)
	}

	return fmt.Sprintf(`%s;node["amenity"="%s"](around:%d,%s,%s);out;`,
		header,
		req.Category,
		req.Radius,
		strconv.FormatFloat(req.Center.Latitude, 'f', -1, 64),
		strconv.FormatFloat(req.Center.Longitude, 'f', -1, 64),
	)
}
