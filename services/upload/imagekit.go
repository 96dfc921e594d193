// Package uploadsvc authenticates browser uploads against ImageKit. The file
// bytes never pass through this server; clients request short-lived signed
// parameters here and upload directly.
package uploadsvc

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/osatria/portal/core"
)

// AuthParams is the signed triple an upload widget presents to ImageKit.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// Config is the public subset of the upload settings a client needs alongside
// the signed parameters.
type Config struct {
	PublicKey   string `json:"publicKey"`
	URLEndpoint string `json:"urlEndpoint"`
	Folder      string `json:"folder"`
	MaxSizeMB   int    `json:"maxSizeMB"`
}

type ImageKitService struct {
	privateKey string
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewImageKitService() *ImageKitService {
	return &ImageKitService{
		privateKey: core.Conf.Upload.ImageKitPrivateKey,
		tokenTTL:   core.Conf.Upload.TokenTTL,
		now:        time.Now,
	}
}

// AuthParams mints a one-time upload authorization: a fresh token, an expiry,
// and signature = hex(HMAC-SHA1(token + expire, privateKey)).
func (svc *ImageKitService) AuthParams() AuthParams {
	token := uuid.New().String()
	expire := svc.now().Add(svc.tokenTTL).Unix()
	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: svc.sign(token, expire),
	}
}

func (svc *ImageKitService) sign(token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(svc.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// ClientConfig returns the non-secret settings a client combines with the
// signed parameters.
func (svc *ImageKitService) ClientConfig() Config {
	return Config{
		PublicKey:   core.Conf.Upload.ImageKitPublicKey,
		URLEndpoint: core.Conf.Upload.ImageKitEndpoint,
		Folder:      core.Conf.Upload.Folder,
		MaxSizeMB:   core.Conf.Upload.MaxSizeMB,
	}
}
