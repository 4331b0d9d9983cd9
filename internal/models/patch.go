package models

// assign copies *src into *dst when src is set.
func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// assignOptional replaces an optional field with a private copy of src.
func assignOptional[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
