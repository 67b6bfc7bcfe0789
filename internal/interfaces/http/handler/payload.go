package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// multipartMemory is held in memory before multipart parts spill to disk
const multipartMemory = 8 << 20

var errNotAnObject = errors.New("request body must be a JSON object")

// bindPayload decodes the request body into a Payload. JSON bodies keep
// numbers as json.Number; form and multipart bodies yield the first value
// of each field. An empty body is an empty payload.
func bindPayload(c *gin.Context) (appinv.Payload, error) {
	p := appinv.Payload{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return p, nil
	}

	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch mediaType {
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				p[k] = v[0]
			}
		}
		return p, nil
	case gin.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			return nil, err
		}
		for k, v := range c.Request.MultipartForm.Value {
			if len(v) > 0 {
				p[k] = v[0]
			}
		}
		return p, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return p, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errNotAnObject
	}
	for k, v := range obj {
		p[k] = v
	}
	return p, nil
}

// payloadOrAbort binds the payload or answers 400 and returns false
func (h *BaseHandler) payloadOrAbort(c *gin.Context) (appinv.Payload, bool) {
	p, err := bindPayload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return nil, false
		}
		h.BadRequest(c, dto.ErrCodeBadRequest, "Malformed request body: "+err.Error())
		return nil, false
	}
	return p, true
}
