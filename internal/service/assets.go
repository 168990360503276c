package service

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// assetIDLength is the number of hex characters of an asset short id.
const assetIDLength = 8

// IDGenerator produces the short ids asset paths are prefixed with.
// utils.UUIDGenerator is the production implementation.
type IDGenerator interface {
	ShortID(n int) string
}

// preferredExt overrides the alphabetical choice of mime.ExtensionsByType.
var preferredExt = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
	"text/plain":      ".txt",
}

// TransformAssets replaces every embedded binary in the update values and
// meta patches of actions with a generated "assets/<shortid>-<name>" path
// and returns the rewritten actions with one upload per replaced binary.
//
// Embedded binaries are models.File values, *models.File pointers and
// "data:<mime>;base64,<payload>" strings, at any depth. The input actions
// are not modified.
func TransformAssets(actions []models.Action, ids IDGenerator) ([]models.Action, []models.AssetUpload, error) {
	t := &assetTransformer{ids: ids}

	out := make([]models.Action, len(actions))
	for i, action := range actions {
		switch action.Type {
		case models.ActionUpdate:
			v, err := t.walk(action.Value)
			if err != nil {
				return nil, nil, fmt.Errorf("action %d: %w", i, err)
			}
			action.Value = v.(models.Item)
		case models.ActionMeta:
			v, err := t.walk(action.Meta)
			if err != nil {
				return nil, nil, fmt.Errorf("action %d: %w", i, err)
			}
			action.Meta = v.(models.Meta)
		}
		out[i] = action
	}
	return out, t.uploads, nil
}

type assetTransformer struct {
	ids     IDGenerator
	uploads []models.AssetUpload
}

func (t *assetTransformer) walk(v any) (any, error) {
	switch x := v.(type) {
	case models.File:
		return t.upload(x), nil
	case *models.File:
		if x == nil {
			return nil, nil
		}
		return t.upload(*x), nil
	case string:
		f, ok, err := parseDataURL(x)
		if err != nil || !ok {
			return x, err
		}
		return t.upload(f), nil
	case models.Item:
		if x == nil {
			return x, nil
		}
		m, err := t.walkMap(x)
		return models.Item(m), err
	case models.Meta:
		if x == nil {
			return x, nil
		}
		m, err := t.walkMap(x)
		return models.Meta(m), err
	case map[string]any:
		return t.walkMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			w, err := t.walk(e)
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	default:
		return v, nil
	}
}

func (t *assetTransformer) walkMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, e := range m {
		w, err := t.walk(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = w
	}
	return out, nil
}

func (t *assetTransformer) upload(f models.File) string {
	if f.MIMEType == "" {
		f.MIMEType = mime.TypeByExtension(path.Ext(f.Name))
		if f.MIMEType == "" {
			f.MIMEType = http.DetectContentType(f.Data)
		}
	}
	f.Name = assetName(f.Name, f.MIMEType)
	if f.Data == nil {
		f.Data = []byte{}
	}

	p := path.Join(models.AssetsDir, t.ids.ShortID(assetIDLength)+"-"+f.Name)
	t.uploads = append(t.uploads, models.AssetUpload{Path: p, File: f})
	return p
}

// parseDataURL decodes a base64 data URL. ok is false for any other string.
func parseDataURL(s string) (models.File, bool, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return models.File{}, false, nil
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return models.File{}, false, nil
	}

	params := strings.Split(strings.TrimSuffix(header, ";base64"), ";")
	f := models.File{MIMEType: params[0]}
	for _, p := range params[1:] {
		if name, ok := strings.CutPrefix(p, "name="); ok {
			if unescaped, err := url.PathUnescape(name); err == nil {
				name = unescaped
			}
			f.Name = name
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return models.File{}, false, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}
	f.Data = data
	return f, true, nil
}

// assetName keeps the base name of name with unsafe characters replaced.
// Names without an extension get one from the MIME type.
func assetName(name, mimeType string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.Trim(name, "._")

	if name == "" {
		name = "file"
	}
	if path.Ext(name) == "" {
		name += extFor(mimeType)
	}
	return name
}

func extFor(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ".bin"
	}
	if ext, ok := preferredExt[mediaType]; ok {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// ReferencedAssets collects every asset path referenced from items or meta.
func ReferencedAssets(items []models.Item, meta models.Meta) map[string]struct{} {
	refs := make(map[string]struct{})
	var visit func(v any)
	visit = func(v any) {
		switch x := v.(type) {
		case string:
			if strings.HasPrefix(x, models.AssetsDir+"/") {
				refs[x] = struct{}{}
			}
		case models.Item:
			for _, e := range x {
				visit(e)
			}
		case models.Meta:
			for _, e := range x {
				visit(e)
			}
		case map[string]any:
			for _, e := range x {
				visit(e)
			}
		case []any:
			for _, e := range x {
				visit(e)
			}
		}
	}

	for _, it := range items {
		visit(it)
	}
	visit(meta)
	return refs
}
