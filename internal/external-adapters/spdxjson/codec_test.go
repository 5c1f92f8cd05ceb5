package spdxjson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/sbommerge/internal/domain/combinable"
	"github.com/ochairo/sbommerge/internal/domain/entities"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "alpine.spdx.json"))
	require.NoError(t, err)
	return data
}

func TestCodec_Decode(t *testing.T) {
	doc, err := NewCodec(DefaultIndent).Decode(loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, "SPDXRef-DOCUMENT", doc.SPDXID)
	assert.Equal(t, entities.SupportedSPDXVersion, doc.SPDXVersion)
	assert.Equal(t, "alpine-3.19", doc.Name)
	assert.Equal(t, combinable.Text("CC0-1.0"), doc.DataLicense)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), doc.CreationInfo.Created.UTC())
	assert.Equal(t, 2, doc.CreationInfo.Creators.Len())
	assert.Equal(t, combinable.Some[combinable.Text]("3.22"), doc.CreationInfo.LicenseListVersion)
	assert.False(t, doc.CreationInfo.Comment.IsSome())
	assert.False(t, doc.Comment.IsSome())

	assert.Equal(t, []string{"SPDXRef-Package-zlib"}, doc.Describes())
	assert.Equal(t, 2, doc.Packages.Len())
	assert.Equal(t, 2, doc.Relationships.Len())

	files, ok := doc.Files.Get()
	require.True(t, ok)
	assert.Equal(t, 1, files.Len())

	snippets, ok := doc.Snippets.Get()
	require.True(t, ok)
	snippet := snippets.Items()[0]
	r := snippet.Ranges.Items()[0]
	assert.Equal(t, combinable.Some(310), r.StartPointer.Offset)
	assert.False(t, r.StartPointer.LineNumber.IsSome())

	assert.False(t, doc.Annotations.IsSome(), "absent collections stay absent")
	assert.False(t, doc.ExternalDocumentRefs.IsSome())

	var zlib entities.Package
	for _, p := range doc.Packages.Items() {
		if p.Name == "zlib" {
			zlib = p
		}
	}
	assert.Equal(t, combinable.Some(false), zlib.FilesAnalyzed)
	assert.Equal(t, 1, zlib.ExternalRefs.Len())
	assert.Equal(t, "Copyright Jean-loup Gailly <jloup@gzip.org>", zlib.CopyrightText)
}

func TestCodec_Decode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty input", data: ``},
		{name: "truncated", data: `{"SPDXID": "SPDXRef-DOCUMENT",`},
		{name: "array instead of object", data: `[]`},
		{name: "name has wrong type", data: `{"name": 42}`},
		{name: "packages is not a list", data: `{"packages": {"SPDXID": "x"}}`},
		{name: "bad created timestamp", data: `{"creationInfo": {"created": "yesterday"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewCodec(DefaultIndent).Decode([]byte(tt.data))
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, entities.ErrDecode)

			var de *entities.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, FormatName, de.Format)
		})
	}
}

func TestCodec_Decode_Defaults(t *testing.T) {
	doc, err := NewCodec(DefaultIndent).Decode([]byte(`{"spdxVersion": "SPDX-2.3"}`))
	require.NoError(t, err)

	assert.Equal(t, "", doc.Name)
	assert.Equal(t, 0, doc.Packages.Len())
	assert.Equal(t, 0, doc.CreationInfo.Creators.Len())
	assert.False(t, doc.DocumentDescribes.IsSome())
}

func TestCodec_Encode_FieldPresence(t *testing.T) {
	doc := &entities.Document{
		SPDXID:      "SPDXRef-DOCUMENT",
		SPDXVersion: entities.SupportedSPDXVersion,
		CreationInfo: entities.CreationInfo{
			Created:  time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
			Creators: combinable.NewSet("Tool: sbommerge"),
		},
		Name:              "a AND b",
		DataLicense:       "CC0-1.0",
		DocumentNamespace: "https://example.com/a",
		Files:             combinable.Some(combinable.NewSet[entities.File]()),
		Packages: combinable.NewSet(entities.Package{
			SPDXID:           "SPDXRef-P",
			Name:             "p",
			DownloadLocation: "NOASSERTION",
		}),
	}

	data, err := NewCodec(DefaultIndent).Encode(doc)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, `[]`, string(raw["files"]), "present empty optional collection is kept")
	assert.NotContains(t, raw, "snippets", "absent optional collection is omitted")
	assert.NotContains(t, raw, "comment")
	assert.NotContains(t, raw, "documentDescribes")
	assert.Contains(t, raw, "relationships", "required collections are always written")

	var info map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["creationInfo"], &info))
	assert.Equal(t, `"2026-10-15T08:00:00Z"`, string(info["created"]))
	assert.NotContains(t, info, "licenseListVersion")

	var packages []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["packages"], &packages))
	require.Len(t, packages, 1)
	assert.NotContains(t, packages[0], "checksums", "empty element collections are omitted")
	assert.NotContains(t, packages[0], "filesAnalyzed")
	assert.NotContains(t, packages[0], "versionInfo")
}

func TestCodec_Encode_Deterministic(t *testing.T) {
	codec := NewCodec(DefaultIndent)
	doc, err := codec.Decode(loadFixture(t))
	require.NoError(t, err)

	first, err := codec.Encode(doc)
	require.NoError(t, err)

	again, err := codec.Decode(first)
	require.NoError(t, err)
	second, err := codec.Encode(again)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), "<jloup@gzip.org>", "html characters are not escaped")
	assert.NotContains(t, string(first), "someVendorExtension")
}

func TestCodec_Encode_Compact(t *testing.T) {
	data, err := NewCodec("").Encode(&entities.Document{SPDXVersion: entities.SupportedSPDXVersion})
	require.NoError(t, err)
	assert.NotContains(t, string(data[:len(data)-1]), "\n")
}

func TestCodec_Encode_Nil(t *testing.T) {
	_, err := NewCodec(DefaultIndent).Encode(nil)
	assert.ErrorIs(t, err, entities.ErrEncode)
}
