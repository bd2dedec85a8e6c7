package bypass

import (
	"net/http"
	"testing"
)

func TestDetectCloudflare(t *testing.T) {
	// Not blocked
	if detected, _ := detectCloudflare(200, http.Header{"Server": {"nginx"}}, []byte("OK")); detected {
		t.Errorf("expected not detected")
	}

	// CF Server Header
	if detected, src := detectCloudflare(403, http.Header{"Server": {"cloudflare"}}, []byte("Access Denied")); !detected || src != "Cloudflare" {
		t.Errorf("expected Cloudflare detection by header")
	}

	// CF Body signature
	if detected, src := detectCloudflare(503, http.Header{}, []byte("<html>... cf-turnstile ...</html>")); !detected || src != "Cloudflare" {
		t.Errorf("expected Cloudflare detection by body")
	}
}

func TestDetectAkamai(t *testing.T) {
	if detected, src := detectAkamai(403, http.Header{"Server": {"AkamaiGHost"}}, []byte("")); !detected || src != "Akamai" {
		t.Errorf("expected Akamai detection by header")
	}

	if detected, src := detectAkamai(403, http.Header{}, []byte("Access Denied... Reference #123.456")); !detected || src != "Akamai" {
		t.Errorf("expected Akamai detection by body")
	}
}

func TestDetectDataDome(t *testing.T) {
	if detected, src := detectDataDome(403, http.Header{"X-Datadome": {"1"}}, []byte("")); !detected || src != "DataDome" {
		t.Errorf("expected DataDome detection by header")
	}

	if detected, src := detectDataDome(403, http.Header{}, []byte("script src='https://geo.captcha-delivery.com/...'")); !detected || src != "DataDome" {
		t.Errorf("expected DataDome detection by body")
	}
}

func TestDetectPerimeterX(t *testing.T) {
	if detected, src := detectPerimeterX(403, http.Header{"X-Px-Captcha": {"required"}}, []byte("")); !detected || src != "PerimeterX" {
		t.Errorf("expected PerimeterX detection by header")
	}

	if detected, src := detectPerimeterX(403, http.Header{}, []byte("window._pxBlock = true;")); !detected || src != "PerimeterX" {
		t.Errorf("expected PerimeterX detection by body")
	}
}

func TestAnalyze(t *testing.T) {
	detectors := DefaultDetectors()

	detected, src := Analyze(403, http.Header{"X-Datadome": {"1"}}, []byte(""), detectors)
	if !detected || src != "DataDome" {
		t.Errorf("expected DataDome detection, got %v, %s", detected, src)
	}

	detectedSafe, srcSafe := Analyze(200, http.Header{}, []byte("hello"), detectors)
	if detectedSafe || srcSafe != "" {
		t.Errorf("expected no detection for plain response, got %v, %s", detectedSafe, srcSafe)
	}
}
