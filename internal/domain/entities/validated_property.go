package entities

type ValidatedProperty struct {
	*Property
}

func NewValidatedProperty(property *Property) (*ValidatedProperty, error) {
	if err := property.validate(); err != nil {
		return nil, err
	}

	return &ValidatedProperty{Property: property}, nil
}

func (vp *ValidatedProperty) GetProperty() *Property {
	return vp.Property
}
