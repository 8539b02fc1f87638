package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// The trading API is inconsistent about list shapes: some endpoints
// return a bare array, some wrap it under a key, and some return a
// single object. Each page body is classified once and handled by class.
type bodyClass int

const (
	classList         bodyClass = iota // bare JSON array
	classWrappedList                   // object wrapping an array under listKey
	classSingleObject                  // object with no array value
	classOpaque                        // scalar, null, or unparseable
)

// Wrapper keys checked before falling back to the first array value in
// document order.
var wrapperKeys = []string{"orders", "activities"}

type classifiedBody struct {
	class   bodyClass
	listKey string           // set for classWrappedList
	items   []map[string]any // extracted items for non-opaque classes
	object  map[string]any   // the enclosing object, for token lookup
}

// classifyBody decodes a page body and determines where its items live.
func classifyBody(body []byte) classifiedBody {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return classifiedBody{class: classOpaque}
	}

	switch data := v.(type) {
	case []any:
		return classifiedBody{class: classList, items: toItems(data)}

	case map[string]any:
		for _, key := range wrapperKeys {
			if list, ok := data[key].([]any); ok {
				return classifiedBody{
					class:   classWrappedList,
					listKey: key,
					items:   toItems(list),
					object:  data,
				}
			}
		}
		// encoding/json maps are unordered, so scan the raw bytes for
		// the first key whose value is an array.
		for _, key := range objectKeys(body) {
			if list, ok := data[key].([]any); ok {
				return classifiedBody{
					class:   classWrappedList,
					listKey: key,
					items:   toItems(list),
					object:  data,
				}
			}
		}
		return classifiedBody{
			class:  classSingleObject,
			items:  []map[string]any{data},
			object: data,
		}

	default:
		return classifiedBody{class: classOpaque}
	}
}

// toItems converts decoded array elements to item objects. Non-object
// elements are wrapped under a "value" field so they survive tabulation.
func toItems(list []any) []map[string]any {
	items := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, obj)
		} else {
			items = append(items, map[string]any{"value": el})
		}
	}
	return items
}

// objectKeys returns the top-level keys of a JSON object in document order.
func objectKeys(body []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)

		if err := skipValue(dec); err != nil {
			return keys
		}
	}
	return keys
}

// skipValue consumes one JSON value from the decoder, descending into
// nested objects and arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// collectPages drives getRaw across pages of a list endpoint until no
// next-page token remains or hardLimit items have accumulated. A page
// body that is neither list nor object stops pagination and marks the
// collection partial; items gathered so far are still returned.
func (c *Client) collectPages(ctx context.Context, path string, query url.Values, hardLimit int) (*Collection, error) {
	coll := &Collection{}
	params := cloneValues(query)

	for {
		resp, err := c.getRaw(ctx, path, params)
		if err != nil {
			return nil, err
		}

		page := classifyBody(resp.Body)
		if page.class == classOpaque {
			coll.Partial = true
			coll.Reason = "unreadable page body"
			c.logger.Warn("stopping pagination on unreadable page body",
				"path", path,
				"items", len(coll.Items),
			)
			return coll, nil
		}

		coll.Items = append(coll.Items, page.items...)

		if hardLimit > 0 && len(coll.Items) >= hardLimit {
			coll.Items = coll.Items[:hardLimit]
			return coll, nil
		}

		token := nextPageToken(page.object, resp.Header)
		if token == "" {
			return coll, nil
		}
		params.Set("page_token", token)
	}
}

// nextPageToken locates the pagination cursor for the next request.
// Body fields win over response headers.
func nextPageToken(obj map[string]any, header http.Header) string {
	for _, key := range []string{"next_page_token", "next_page_id"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	// Some endpoints have shipped the cursor under an underscored header
	// name, so both spellings are checked.
	for _, key := range []string{"X-Next-Page-Token", "Next-Page-Token", "next_page_token"} {
		if s := header.Get(key); s != "" {
			return s
		}
	}
	return ""
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
