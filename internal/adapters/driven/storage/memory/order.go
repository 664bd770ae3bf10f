package memory

// order tracks insertion order of ids so List is stable.
type order []string

func (o *order) add(id string) {
	for _, existing := range *o {
		if existing == id {
			return
		}
	}
	*o = append(*o, id)
}

func (o *order) remove(id string) {
	for i, existing := range *o {
		if existing == id {
			*o = append((*o)[:i], (*o)[i+1:]...)
			return
		}
	}
}
