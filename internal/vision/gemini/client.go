package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/entity"
	"github.com/auditpack/auditpack/internal/vision"
)

// Extract implements vision.Extractor over the generateContent endpoint.
// All photos go out in a single multi-image request together with the
// business-rule instruction and the structured-output schema. The call has
// no side effects beyond the network round trip and never retries; retry,
// if any, belongs to the caller.
func (c *Client) Extract(ctx context.Context, photos []string) (entity.ExtractedData, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	if c.cfg.APIKey == "" {
		c.log.Error("vision.extract.no_api_key", "req_id", rid)
		return entity.ExtractedData{}, nil, common.ConfigError("GEMINI_API_KEY is not configured")
	}

	c.log.Info("vision.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"photos", len(photos),
	)

	parts := make([]map[string]any, 0, len(photos)+1)
	parts = append(parts, map[string]any{"text": vision.BuildInstruction()})
	for _, photo := range photos {
		mimeType, data := vision.ImagePart(photo)
		parts = append(parts, map[string]any{
			"inline_data": map[string]any{
				"mime_type": mimeType,
				"data":      data,
			},
		})
	}

	schema := vision.BuildExtractionJSONSchema()
	body := map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]any{{"text": vision.BuildSystemInstruction()}},
		},
		"contents": []map[string]any{{"parts": parts}},
		"generation_config": map[string]any{
			"response_mime_type": "application/json",
			"response_schema":    schema,
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + c.cfg.Model + ":generateContent"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("vision.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedData{}, nil, err
	}

	var gr struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gr); err != nil {
		c.log.Error("vision.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedData{}, raw, common.NewAppError("EXTRACTION_PARSE", "decode gemini response", common.ErrExtractionParse)
	}

	var text strings.Builder
	for _, cand := range gr.Candidates {
		for _, part := range cand.Content.Parts {
			text.WriteString(part.Text)
		}
		break // only the first candidate carries the answer
	}

	doc := vision.TrimToJSON(text.String())
	if doc == "" {
		c.log.Error("vision.extract.empty_response",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedData{}, raw, common.NewAppError("EXTRACTION_EMPTY", "oracle returned no usable text", common.ErrExtractionEmpty)
	}
	rawContent := []byte(doc)

	// Validate strictly first; a mismatch is tolerable because coercion
	// backfills every optional field, but it is worth a warning.
	if err := vision.ValidateAgainstSchema(schema, rawContent); err != nil {
		c.log.Warn("vision.extract.schema_mismatch",
			"req_id", rid, "error", err,
		)
	}

	out, err := vision.CoerceExtraction(rawContent, time.Now())
	if err != nil {
		c.log.Error("vision.extract.coerce_failed",
			"req_id", rid, "error", err, "content_bytes", len(rawContent),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedData{}, rawContent, err
	}

	c.log.Info("vision.extract.ok",
		"req_id", rid,
		"razao_social", out.RazaoSocial,
		"cnpjs", len(out.CNPJ),
		"moldagem", out.Moldagem,
		"formato", out.FormatoEmbalagem,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, rawContent, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, common.TransportError("gemini http error", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("gemini response body close error", "error", err)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, common.TransportError(fmt.Sprintf("gemini status %d: %s", resp.StatusCode, buf.String()), nil)
	}
	return buf.Bytes(), nil
}
