package ticket

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// 表示用のチケット番号。タイムスタンプ+乱数hexで衝突確率は無視できる水準
// （セキュリティトークンではないのでDBとの重複チェックはしない）
func GenerateNumber(now time.Time) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		//乱数が取れない環境では時刻だけで組む
		return fmt.Sprintf("TKT-%d", now.UnixNano())
	}
	return fmt.Sprintf("TKT-%d-%s", now.UnixMilli(), hex.EncodeToString(b))
}

// QRに埋める最小構造。復元可能である必要はない
type qrPayload struct {
	T string `json:"t"` //チケット番号の末尾4文字
	P string `json:"p"` //product id（36進）
	U string `json:"u"` //user id（36進）
	S string `json:"s"` //タイムスタンプ（36進、先頭6文字）
}

const (
	payloadMaxLen = 50
	qrCodeMaxLen  = 150
	qrImageSize   = 256
)

// スキャン照合用の不透明トークンを作る。
// JSON→base64→50文字で切る→QR画像→base64→150文字で切る、という意図的に
// 非可逆な変換。保存されたqr_code列との完全一致でのみ照合される
func GenerateQRCode(ticketNumber string, productID int64, userID int64, now time.Time) (string, error) {
	tail := ticketNumber
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}

	ts := strconv.FormatInt(now.Unix(), 36)
	if len(ts) > 6 {
		ts = ts[:6]
	}

	p := qrPayload{
		T: tail,
		P: strconv.FormatInt(productID, 36),
		U: strconv.FormatInt(userID, 36),
		S: ts,
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	if len(encoded) > payloadMaxLen {
		encoded = encoded[:payloadMaxLen]
	}

	png, err := qrcode.Encode(encoded, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", err
	}

	code := base64.StdEncoding.EncodeToString(png)
	if len(code) > qrCodeMaxLen {
		code = code[:qrCodeMaxLen]
	}

	return code, nil
}
