package jsonschema

import "testing"

func testFormat(t *testing.T, name string, valid, invalid []string) {
	t.Helper()
	f := formats[name]
	if f == nil {
		t.Fatalf("formats[%q] not registered", name)
	}
	for _, s := range valid {
		if err := f.Validate(s); err != nil {
			t.Errorf("%s(%q) error = %v, want valid", name, s, err)
		}
	}
	for _, s := range invalid {
		if err := f.Validate(s); err == nil {
			t.Errorf("%s(%q) = valid, want error", name, s)
		}
	}
	if err := f.Validate(12); err != nil {
		t.Errorf("%s(12) error = %v, non-strings must not fail", name, err)
	}
}

func TestFormatDate(t *testing.T) {
	testFormat(t, "date",
		[]string{"1963-06-19", "2020-02-29", "2000-02-29"},
		[]string{"2021-02-29", "1900-02-29", "2021-13-01", "2021-00-10", "2021-01-32", "06/19/1963", "1963-6-19"},
	)
}

func TestFormatTime(t *testing.T) {
	testFormat(t, "time",
		[]string{"08:30:06Z", "08:30:06.283185Z", "08:30:06+00:20", "23:59:60Z", "15:59:60-08:00"},
		[]string{"08:30:06", "24:00:00Z", "08:60:06Z", "08:30:61Z", "08:30:06+24:00", "12:59:60Z", "08:30:06.Z"},
	)
}

func TestFormatDateTime(t *testing.T) {
	testFormat(t, "date-time",
		[]string{"1963-06-19T08:30:06Z", "1963-06-19t08:30:06z", "1990-12-31T15:59:60-08:00"},
		[]string{"1963-06-19 08:30:06Z", "1963-06-19", "08:30:06Z", "1963-06-19T08:30:06"},
	)
}

func TestFormatDuration(t *testing.T) {
	testFormat(t, "duration",
		[]string{"P4DT12H30M5S", "P1Y2M3D", "PT1H", "P2W", "PT0S", "P1YT1S"},
		[]string{"P", "PT", "4DT12H", "P1D2M", "P1S", "P2W3D", "P1YT"},
	)
}

func TestFormatPeriod(t *testing.T) {
	testFormat(t, "period",
		[]string{
			"1963-06-19T08:30:06Z/P4DT12H30M5S",
			"P4DT12H30M5S/1963-06-19T08:30:06Z",
			"1963-06-19T08:30:06Z/1963-06-20T08:30:06Z",
		},
		[]string{
			"P4DT12H30M5S/P4DT12H30M5S",
			"1963-06-19T08:30:06Z",
			"P4DT12H30M5S",
			"1963-06-19T08:30:06Z/P4D/P4D",
			"1963-06-19T08:30:06Z/bogus",
		},
	)
}

func TestFormatHostname(t *testing.T) {
	testFormat(t, "hostname",
		[]string{"example.com", "ex-ample.com.", "localhost", "a.b.c.d"},
		[]string{"-example.com", "example-.com", "exa_mple.com", "a..b", string(make([]byte, 254))},
	)
}

func TestFormatEmail(t *testing.T) {
	testFormat(t, "email",
		[]string{"joe@example.com", "joe.bloggs@example.com", `"joe bloggs"@example.com`, "joe@[127.0.0.1]", "joe@[IPv6:::1]"},
		[]string{"example.com", ".joe@example.com", "joe.@example.com", "jo..e@example.com", "joe@-example.com"},
	)
}

func TestFormatIP(t *testing.T) {
	testFormat(t, "ipv4",
		[]string{"127.0.0.1", "255.255.255.255"},
		[]string{"256.0.0.1", "127.0.0", "::1", "127.0.0.01"},
	)
	testFormat(t, "ipv6",
		[]string{"::1", "2001:db8::8a2e:370:7334"},
		[]string{"127.0.0.1", "2001:db8::8a2e:370:7334::x", "::ffff:127.0.0.1"},
	)
}

func TestFormatUUID(t *testing.T) {
	testFormat(t, "uuid",
		[]string{"2EB8AA08-AA98-11EA-B4AA-73B441D16380", "2eb8aa08-aa98-11ea-b4aa-73b441d16380"},
		[]string{"2eb8aa08-aa98-11ea-b4aa-73b441d1638", "2eb8aa08aa9811eab4aa73b441d16380", "2eb8aa08-aa98-11ea-b4aa-73b441d1638g"},
	)
}

func TestFormatJSONPointer(t *testing.T) {
	testFormat(t, "json-pointer",
		[]string{"", "/foo/0", "/a~1b", "/m~0n", "/"},
		[]string{"foo", "/a~b", "/a~2", "/a~"},
	)
	testFormat(t, "relative-json-pointer",
		[]string{"0", "1/foo", "2#", "10/a~1b"},
		[]string{"", "01", "-1/foo", "1#/foo", "abc"},
	)
}

func TestFormatURI(t *testing.T) {
	testFormat(t, "uri",
		[]string{"http://example.com/path?q=1#frag", "urn:isbn:0451450523", "file:///tmp/x"},
		[]string{"//example.com", "/relative/path", "%"},
	)
	testFormat(t, "uri-reference",
		[]string{"/relative/path", "//example.com", "#frag", ""},
		[]string{`\\a\b`, "%"},
	)
	testFormat(t, "uri-template",
		[]string{"http://example.com/{term}/x", "http://example.com/dictionary/{term:1}/{term}", "http://example.com/plain"},
		[]string{"http://example.com/{term", "http://example.com/{{term}}", "http://example.com/term}"},
	)
}

func TestFormatIDNHostname(t *testing.T) {
	testFormat(t, "idn-hostname",
		[]string{"example.com", "bücher.example"},
		[]string{"-example.com", "xn--"},
	)
}

func TestFormatRegex(t *testing.T) {
	testFormat(t, "regex",
		[]string{"^a+$", "(?=lookahead)x", `a\d{2,3}`},
		[]string{"^(abc]", "a{2,1}"},
	)
}
