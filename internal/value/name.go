package value

// Name is a validated GraphQL identifier, used as an Object key and as the
// payload of Enum. It is an ordinary comparable, ordered string type.
type Name string

// MakeName validates s against the GraphQL name grammar
// /[_A-Za-z][_0-9A-Za-z]*/ and returns it as a Name.
func MakeName(s string) (Name, bool) {
	if len(s) == 0 {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return "", false
		}
	}
	return Name(s), true
}

func (n Name) String() string { return string(n) }
