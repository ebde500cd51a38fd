package jwt

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Orígenes posibles de una identidad.
const (
	SourceLocal    = "local"
	SourceKeycloak = "keycloak"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Roles va en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// KeycloakClaims subconjunto de un access token emitido por un realm de Keycloak.
type KeycloakClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

// Identity usuario autenticado extraído de un token válido.
type Identity struct {
	UserID   string
	Username string
	Roles    []string
	Source   string
}

// Generate genera un token HS256 firmado con userID, username y roles.
func Generate(secret, userID, username string, roles []string, issuer string, expMinutes int) (string, error) {
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
		UserID:   userID,
		Username: username,
		Roles:    roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un token local (HS256) y devuelve la identidad.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles,
		Source:   SourceLocal,
	}, nil
}

// ParseKeycloak valida un token RS256 del realm (firma con la llave pública y emisor) y devuelve
// la identidad con los roles de realm_access en mayúsculas.
func ParseKeycloak(key *rsa.PublicKey, issuer, tokenString string) (*Identity, error) {
	if key == nil {
		return nil, fmt.Errorf("jwt: llave pública de Keycloak no configurada")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &KeycloakClaims{}, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*KeycloakClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	roles := make([]string, 0, len(claims.RealmAccess.Roles))
	for _, r := range claims.RealmAccess.Roles {
		roles = append(roles, strings.ToUpper(r))
	}
	username := claims.PreferredUsername
	if username == "" {
		username = claims.Subject
	}
	return &Identity{
		UserID:   claims.Subject,
		Username: username,
		Roles:    roles,
		Source:   SourceKeycloak,
	}, nil
}

// ParseRSAPublicKey acepta la llave pública del realm en PEM o como el base64 DER que muestra la consola de Keycloak.
func ParseRSAPublicKey(s string) (*rsa.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("jwt: llave pública vacía")
	}
	if !strings.HasPrefix(s, "-----BEGIN") {
		der, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("jwt: llave pública no es PEM ni base64: %w", err)
		}
		s = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
	}
	return jwt.ParseRSAPublicKeyFromPEM([]byte(s))
}

// Verifier valida tokens locales y, si está configurado, tokens de Keycloak.
type Verifier struct {
	secret         string
	keycloakKey    *rsa.PublicKey
	keycloakIssuer string
}

// NewVerifier construye el verificador. keycloakKey nil desactiva Keycloak.
func NewVerifier(secret string, keycloakKey *rsa.PublicKey, keycloakIssuer string) *Verifier {
	return &Verifier{secret: secret, keycloakKey: keycloakKey, keycloakIssuer: keycloakIssuer}
}

// Verify intenta primero como token local (HS256) y luego como token de Keycloak (RS256).
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	alg, err := headerAlg(tokenString)
	if err != nil {
		return nil, err
	}
	if alg == "RS256" && v.keycloakKey != nil {
		return ParseKeycloak(v.keycloakKey, v.keycloakIssuer, tokenString)
	}
	return Parse(v.secret, tokenString)
}

func headerAlg(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	alg, _ := token.Header["alg"].(string)
	return alg, nil
}
