package blocklist

import (
	"strings"
	"testing"
)

func TestBlockedExactDomain(t *testing.T) {
	l := New()

	blocked, reason := l.IsBlocked("https://pornhub.com/some/page")
	if !blocked {
		t.Fatal("Expected pornhub.com to be blocked")
	}
	if !strings.Contains(reason, "pornhub.com") {
		t.Errorf("Expected reason to cite the domain, got %q", reason)
	}
}

func TestBlockedSubdomain(t *testing.T) {
	l := New()

	blocked, reason := l.IsBlocked("https://sub.pornhub.com/")
	if !blocked {
		t.Fatal("Expected subdomain of blocked domain to be blocked")
	}
	if !strings.Contains(reason, "pornhub.com") {
		t.Errorf("Expected reason to cite the parent domain, got %q", reason)
	}
}

func TestBlockedTLD(t *testing.T) {
	l := New()

	blocked, reason := l.IsBlocked("https://foo.xxx")
	if !blocked {
		t.Fatal("Expected .xxx TLD to be blocked")
	}
	if !strings.Contains(reason, ".xxx") {
		t.Errorf("Expected reason to cite the TLD, got %q", reason)
	}
}

func TestBlockedPattern(t *testing.T) {
	l := New()

	blocked, reason := l.IsBlocked("https://example.com/casino/x")
	if !blocked {
		t.Fatal("Expected /casino/ pattern to be blocked")
	}
	if !strings.Contains(reason, "pattern") {
		t.Errorf("Expected a pattern reason, got %q", reason)
	}
}

func TestAllowedDomains(t *testing.T) {
	l := New()

	for _, u := range []string{
		"https://wikipedia.org",
		"https://bbc.com",
		"https://www.nytimes.com/section/world",
	} {
		if blocked, reason := l.IsBlocked(u); blocked {
			t.Errorf("Expected %s to be allowed, blocked with %q", u, reason)
		}
	}
}

func TestMalformedURLFailsClosed(t *testing.T) {
	l := New()

	for _, u := range []string{
		"http://exa mple.com/a",
		"https://%zz",
		"",
	} {
		if blocked, _ := l.IsBlocked(u); !blocked {
			t.Errorf("Expected malformed URL %q to be blocked", u)
		}
	}
}

func TestCaseInsensitive(t *testing.T) {
	l := New()

	if blocked, _ := l.IsBlocked("https://WWW.PORNHUB.COM"); !blocked {
		t.Error("Expected upper-cased blocked domain to still be blocked")
	}
	if blocked, _ := l.IsBlocked("https://example.com/CASINO/games"); !blocked {
		t.Error("Expected upper-cased pattern hit to still be blocked")
	}
}

func TestAddRemoveDomain(t *testing.T) {
	l := Empty()

	l.AddDomain("www.Spamsite.COM")
	if blocked, _ := l.IsBlocked("https://spamsite.com/x"); !blocked {
		t.Error("Expected added domain to be blocked")
	}
	if blocked, _ := l.IsBlocked("https://a.spamsite.com/x"); !blocked {
		t.Error("Expected subdomain of added domain to be blocked")
	}

	l.RemoveDomain("spamsite.com")
	if blocked, _ := l.IsBlocked("https://spamsite.com/x"); blocked {
		t.Error("Expected removed domain to be allowed again")
	}
}

func TestAddPattern(t *testing.T) {
	l := Empty()

	if err := l.AddPattern(`/get-rich-quick/`); err != nil {
		t.Fatalf("AddPattern failed: %v", err)
	}
	if blocked, _ := l.IsBlocked("https://legit.com/get-rich-quick/scheme"); !blocked {
		t.Error("Expected added pattern to block")
	}

	if err := l.AddPattern(`([`); err == nil {
		t.Error("Expected invalid pattern to return an error")
	}
}

func TestStats(t *testing.T) {
	l := New()
	s := l.Stats()

	if s.Domains == 0 || s.TLDs == 0 || s.Patterns == 0 {
		t.Errorf("Expected non-zero rule counts, got %+v", s)
	}
}
