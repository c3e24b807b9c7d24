package types

// IsEqual returns true if v is equal to the given value.
// Numbers are compared by value regardless of their kind, objects
// are compared regardless of the insertion order of their keys.
func IsEqual(v, other Value) bool {
	if v == nil || other == nil {
		return v == other
	}

	t, ot := v.Type(), other.Type()
	if t.IsNumber() && ot.IsNumber() {
		return compareNumbers(v, other)
	}

	if t != ot {
		return false
	}

	switch t {
	case TypeDiscarded, TypeNull:
		return true
	case TypeBoolean:
		return AsBool(v) == AsBool(other)
	case TypeText:
		return AsString(v) == AsString(other)
	case TypeBlob:
		return v.(BlobValue).equal(other.(BlobValue))
	case TypeArray:
		return compareArrays(AsArray(v), AsArray(other))
	case TypeObject:
		return compareObjects(AsObject(v), AsObject(other))
	}

	return false
}

func compareNumbers(a, b Value) bool {
	at, bt := a.Type(), b.Type()

	if at == TypeDouble || bt == TypeDouble {
		return AsFloat64(a) == AsFloat64(b)
	}

	if at == bt {
		if at == TypeInteger {
			return AsInt64(a) == AsInt64(b)
		}
		return AsUint64(a) == AsUint64(b)
	}

	// one signed, one unsigned
	if !FitsInt64(a) || !FitsInt64(b) {
		return false
	}
	return AsInt64(a) == AsInt64(b)
}

func compareArrays(a, b *ArrayValue) bool {
	if a.Len() != b.Len() {
		return false
	}

	for i := range a.values {
		if !IsEqual(a.values[i], b.values[i]) {
			return false
		}
	}

	return true
}

func compareObjects(a, b *ObjectValue) bool {
	if a.Len() != b.Len() {
		return false
	}

	for _, fv := range a.fields {
		ov, err := b.Get(fv.Key)
		if err != nil {
			return false
		}

		if !IsEqual(fv.Value, ov) {
			return false
		}
	}

	return true
}
