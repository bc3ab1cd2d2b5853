package random

import "math/rand"

// CharsetAlphanumeric contains characters a-zA-Z0-9
var CharsetAlphanumeric = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// String generates a random string with a specific length, only using characters out of the given charset.
// Passing the same seeded source yields the same strings.
func String(rng *rand.Rand, length int, charset []rune) string {
	buf := make([]rune, length)
	for i := range buf {
		buf[i] = charset[rng.Intn(len(charset))]
	}
	return string(buf)
}

// Strings generates n distinct random strings of a specific length
func Strings(rng *rand.Rand, n, length int, charset []rune) []string {
	seen := make(map[string]struct{}, n)
	res := make([]string, 0, n)
	for len(res) < n {
		str := String(rng, length, charset)
		if _, ok := seen[str]; ok {
			continue
		}
		seen[str] = struct{}{}
		res = append(res, str)
	}
	return res
}
