package test_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

func writeArmoredKey(t *testing.T, path, blockType string, serialize func(w *bytes.Buffer) error) {
	t.Helper()

	var body bytes.Buffer
	if err := serialize(&body); err != nil {
		t.Fatalf("Failed to serialize key: %v", err)
	}

	var out bytes.Buffer
	w, err := armor.Encode(&out, blockType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
}

// TestCLI_SignAndVerify tests --sign-key and verify --sig
func TestCLI_SignAndVerify(t *testing.T) {
	entity, err := openpgp.NewEntity("SBOM Release", "", "release@example.org", nil)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	dir := t.TempDir()
	privPath := filepath.Join(dir, "release.key")
	pubPath := filepath.Join(dir, "release.pub")
	writeArmoredKey(t, privPath, openpgp.PrivateKeyType, func(w *bytes.Buffer) error { return entity.SerializePrivate(w, nil) })
	writeArmoredKey(t, pubPath, openpgp.PublicKeyType, func(w *bytes.Buffer) error { return entity.Serialize(w) })

	output := filepath.Join(dir, "merged.spdx.json")
	res := runCLI(t, nil, "merge", "--sign-key", privPath, "-o", output,
		"testdata/first.spdx.json", "testdata/second.spdx.json")
	if res.exitCode != 0 {
		t.Fatalf("Merge failed with code %d: %s", res.exitCode, res.stderr)
	}

	sig, err := os.ReadFile(output + ".asc")
	if err != nil {
		t.Fatalf("Signature not written: %v", err)
	}
	if !strings.Contains(string(sig), "BEGIN PGP SIGNATURE") {
		t.Errorf("Expected an armored signature, got: %s", sig)
	}

	res = runCLI(t, nil, "verify", output, "--sig", output+".asc", "--key", pubPath)
	if res.exitCode != 0 {
		t.Fatalf("verify failed with code %d: %s", res.exitCode, res.stderr)
	}
	if !strings.Contains(res.stdout, "Signature verified") {
		t.Errorf("verify output = %s", res.stdout)
	}

	res = runCLI(t, nil, "verify", output, "--sig", output+".asc")
	if res.exitCode == 0 || !strings.Contains(res.stderr, "--key is required") {
		t.Errorf("Expected missing key error, got code %d: %s", res.exitCode, res.stderr)
	}
}

// TestCLI_SignRequiresOutput tests that signing to stdout is rejected before any work
func TestCLI_SignRequiresOutput(t *testing.T) {
	entity, err := openpgp.NewEntity("SBOM Release", "", "release@example.org", nil)
	if err != nil {
		t.Fatal(err)
	}
	privPath := filepath.Join(t.TempDir(), "release.key")
	writeArmoredKey(t, privPath, openpgp.PrivateKeyType, func(w *bytes.Buffer) error { return entity.SerializePrivate(w, nil) })

	res := runCLI(t, nil, "--sign-key", privPath, "testdata/first.spdx.json", "testdata/second.spdx.json")
	if res.exitCode == 0 {
		t.Fatal("Expected failure when signing without --output")
	}
	if res.stdout != "" {
		t.Errorf("Expected empty stdout, got: %s", res.stdout)
	}
	if !strings.Contains(res.stderr, "require an output location") {
		t.Errorf("stderr = %s", res.stderr)
	}
}
