package types

// Boolean, yeni bir BooleanType oluşturur.
func Boolean() *BooleanType {
	return &BooleanType{}
}

// Number, yeni bir NumberType oluşturur.
func Number() *NumberType {
	return &NumberType{}
}

// String, yeni bir StringType oluşturur.
func String() *StringType {
	return &StringType{}
}
