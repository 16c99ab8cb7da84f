package session_test

import (
	"time"

	"github.com/accountkeeper/accounts-be/src/server/internal/user/session"
	"github.com/golang-jwt/jwt/v5"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Signer", func() {
	var signer session.Signer

	BeforeEach(func() {
		signer = session.NewSigner("secret-under-test")
	})

	Describe("Round trip", func() {
		It("recovers the user ID from a signed token", func() {
			token, err := signer.TokenForUserID("some-user-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			userID, err := signer.UserIDForToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(userID).To(Equal("some-user-id"))
		})
	})

	Describe("Tampered tokens", func() {
		It("rejects a token signed with a different secret", func() {
			otherSigner := session.NewSigner("a-different-secret")
			token, err := otherSigner.TokenForUserID("some-user-id")
			Expect(err).NotTo(HaveOccurred())

			_, err = signer.UserIDForToken(token)
			Expect(err).To(HaveOccurred())
		})

		It("rejects garbage", func() {
			_, err := signer.UserIDForToken("not-a-jwt")
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unsigned token", func() {
			claims := session.Claims{
				UserID: "some-user-id",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}

			unsignedToken := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
			token, err := unsignedToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
			Expect(err).NotTo(HaveOccurred())

			_, err = signer.UserIDForToken(token)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Expired tokens", func() {
		It("rejects a token past its expiry", func() {
			claims := session.Claims{
				UserID: "some-user-id",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
					IssuedAt:  jwt.NewNumericDate(time.Now().Add(-session.TokenExpiry)),
				},
			}

			expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			token, err := expiredToken.SignedString([]byte("secret-under-test"))
			Expect(err).NotTo(HaveOccurred())

			_, err = signer.UserIDForToken(token)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Tokens without a user ID", func() {
		It("rejects them", func() {
			claims := session.Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}

			anonymousToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			token, err := anonymousToken.SignedString([]byte("secret-under-test"))
			Expect(err).NotTo(HaveOccurred())

			_, err = signer.UserIDForToken(token)
			Expect(err).To(HaveOccurred())
		})
	})
})
