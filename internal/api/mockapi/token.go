package mockapi

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IssueToken builds an unsigned JWT-shaped token for subject that expires
// at exp. Only the claims matter to the client; the signature segment is a
// random id so two tokens for the same subject never collide.
func IssueToken(subject string, exp time.Time) string {
	enc := base64.RawURLEncoding
	header, _ := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	claims, _ := json.Marshal(map[string]interface{}{
		"sub": subject,
		"exp": exp.Unix(),
		"jti": uuid.NewString(),
	})
	return enc.EncodeToString(header) + "." + enc.EncodeToString(claims) + "." + enc.EncodeToString([]byte(uuid.NewString()))
}
