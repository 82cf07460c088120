package ir

// TypeConstraint asserts Left and Right are the same type
type TypeConstraint struct {
	Left, Right Type
}

func (c TypeConstraint) String() string {
	return TypeString(c.Left) + " ~ " + TypeString(c.Right)
}

// CoeffectConstraint asserts Left and Right denote the same requirement
type CoeffectConstraint struct {
	Left, Right Coeffect
}

func (c CoeffectConstraint) String() string {
	return CoeffectString(c.Left) + " ~ " + CoeffectString(c.Right)
}

func CoeffectConstraintsEqual(a, b CoeffectConstraint) bool {
	return CoeffectsEqual(a.Left, b.Left) && CoeffectsEqual(a.Right, b.Right)
}
