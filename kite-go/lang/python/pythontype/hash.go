package pythontype

import (
	"encoding/binary"

	spooky "github.com/dgryski/go-spooky"
)

// rehash combines several hashes into one
func rehash(x ...uint64) uint64 {
	var h uint64
	b := make([]byte, 8)
	for _, xi := range x {
		binary.LittleEndian.PutUint64(b, xi)
		h = spooky.Hash64Seed(b, h)
	}
	return h
}

// rehashTypes combines a salt with the hashes of zero or more types, in order
func rehashTypes(s *TypeStack, salt uint64, ts ...DataType) uint64 {
	var h uint64
	b := make([]byte, 8)
	for _, t := range ts {
		binary.LittleEndian.PutUint64(b, hash(t, s))
		h = spooky.Hash64Seed(b, h)
	}
	binary.LittleEndian.PutUint64(b, h)
	return spooky.Hash64Seed(b, salt)
}

// rehashString combines a salt with the hash of a string
func rehashString(salt uint64, str string) uint64 {
	return spooky.Hash64Seed([]byte(str), salt)
}

// guardedHash computes f for a composite type unless t is already being
// hashed further up the stack, in which case only the salt is returned
func guardedHash(s *TypeStack, t DataType, salt uint64, f func() uint64) uint64 {
	if s.Contains(t, t) {
		return salt
	}
	s.Push(t, t)
	defer s.Pop()
	return f()
}

// These constants ensure that the hash of each variant is repeatable but
// distinct. The numbers are randomly generated.
const (
	saltUnknown   = 4813460911873
	saltNone      = 6758959635298
	saltBool      = 1935468612388
	saltInt       = 4663644334535
	saltFloat     = 9843092804544
	saltComplex   = 6573865046781
	saltStr       = 6087650786584
	saltList      = 2608058625550
	saltTuple     = 9785314953969
	saltDict      = 6852785620859
	saltSet       = 2569784136639
	saltIterable  = 7454165149497
	saltFunc      = 6075460587450
	saltClass     = 9005419490459
	saltInstance  = 7018347391875
	saltModule    = 3569715369783
	saltSymbol    = 5768797545612
	saltUnion     = 1085740485675
	saltAwaitable = 8916790813476
)
