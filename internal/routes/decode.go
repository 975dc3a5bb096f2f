package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-viper/mapstructure/v2"
)

const maxBodyBytes = 1 << 20

var errUnsupportedMediaType = errors.New("unsupported media type")

// decodeBody fills out from a JSON or urlencoded form body. Form fields are
// matched through the mapstructure tags of out.
func decodeBody(w http.ResponseWriter, req *http.Request, out interface{}) error {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get(ContentType))
	if err != nil {
		return fmt.Errorf("%w: "+ErrInvalidContentTypeFormat, errUnsupportedMediaType, req.Header.Get(ContentType))
	}
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)

	switch mediaType {
	case ContentTypeJson:
		if err := json.NewDecoder(req.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: %w", ErrFailedToDecodeRequest, err)
		}
		return nil
	case ContentTypeFormURLEncoded:
		if err := req.ParseForm(); err != nil {
			return fmt.Errorf("%s: %w", ErrFailedToDecodeRequest, err)
		}
		fields := make(map[string]interface{}, len(req.PostForm))
		for key := range req.PostForm {
			fields[key] = req.PostForm.Get(key)
		}
		if err := mapstructure.Decode(fields, out); err != nil {
			return fmt.Errorf("%s: %w", ErrFailedToDecodeRequest, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: "+ErrInvalidContentTypeFormat, errUnsupportedMediaType, mediaType)
	}
}
