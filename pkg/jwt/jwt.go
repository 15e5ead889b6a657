package jwt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token propio del BFF. SessionID apunta a la sesión guardada (token del backend + perfil);
// Role permite al middleware RBAC decidir sin consultar el store.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"` // "ADMIN" | "MESERO" | "COCINERO"
}

// Generate genera un token JWT firmado que incluye sessionID, userID y role.
func Generate(secret, sessionID, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sessionID y role.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (sessionID, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	if claims.SessionID == "" {
		return "", "", fmt.Errorf("claims inválidos: session_id vacío")
	}
	return claims.SessionID, claims.Role, nil
}

// userIDClaims orden en que se busca el identificador de usuario dentro de un token del backend.
var userIDClaims = []string{"id", "id_usuario", "idUsuario", "userId", "user_id", "sub"}

// ExtractUserID decodifica (sin verificar firma: el BFF no conoce la llave del backend) un token
// emitido por el backend y devuelve el primer identificador no vacío según userIDClaims.
// Devuelve "" si el token no se puede decodificar o no trae ninguno.
func ExtractUserID(tokenString string) string {
	if strings.Count(tokenString, ".") != 2 {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return ""
	}
	for _, key := range userIDClaims {
		if id := claimString(claims[key]); id != "" {
			return id
		}
	}
	return ""
}

func claimString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		if t == 0 {
			return ""
		}
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
