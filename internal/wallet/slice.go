package wallet

// SliceSize is the number of seed bytes handed to a keypair constructor.
const SliceSize = 32

// SliceBounds picks the 32-byte window [from, to) of a 64-byte seed for a
// selector byte v. The result always satisfies 0 <= from <= 32 and
// to == from+32.
func SliceBounds(v byte) (from, to int) {
	n := int(v)
	for n > SeedSize {
		n -= SeedSize
	}
	from = n
	if from+SliceSize > SeedSize {
		from -= SliceSize
	}
	return from, from + SliceSize
}
