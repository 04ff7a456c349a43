package normalization

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Azúcar Glass", "azucar glass"},
		{"  HARINA   DE  TRIGO ", "harina de trigo"},
		{"Piñón\tRosado", "pinon rosado"},
		{"Café", "cafe"},
		{"ya normalizado", "ya normalizado"},
	}
	for _, tc := range cases {
		if got := Name(tc.in); got != tc.want {
			t.Fatalf("Name(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
