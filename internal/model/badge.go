package model

import "strings"

// Badge variants, named after the colour classes used by the front end.
const (
	VariantPrimary   = "primary"
	VariantSecondary = "secondary"
	VariantSuccess   = "success"
	VariantWarning   = "warning"
	VariantInfo      = "info"
	VariantDanger    = "danger"
)

// Badge is a rendered status or role label.
type Badge struct {
	Variant string `json:"variant"`
	Label   string `json:"label"`
}

func newBadge(variant, value string) Badge {
	return Badge{Variant: variant, Label: strings.Replace(value, "_", " ", 1)}
}
