package avatar_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/accountkeeper/accounts-be/src/server/internal/avatar"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PublicDirStore", func() {
	var (
		rootPath string
		store    avatar.PublicDirStore
	)

	BeforeEach(func() {
		var err error
		rootPath, err = os.MkdirTemp("", "avatar-store-test")
		Expect(err).NotTo(HaveOccurred())

		store = avatar.NewPublicDirStore(rootPath)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(rootPath)).To(Succeed())
	})

	It("writes files under the root, creating directories as needed", func() {
		err := store.WriteFile(context.Background(), "avatars/some-user-id_cat.png", []byte("cat-image-bytes"))
		Expect(err).NotTo(HaveOccurred())

		content, err := os.ReadFile(filepath.Join(rootPath, "avatars", "some-user-id_cat.png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal([]byte("cat-image-bytes")))
	})

	It("overwrites an existing file", func() {
		err := store.WriteFile(context.Background(), "avatars/some-user-id_cat.png", []byte("first"))
		Expect(err).NotTo(HaveOccurred())

		err = store.WriteFile(context.Background(), "avatars/some-user-id_cat.png", []byte("second"))
		Expect(err).NotTo(HaveOccurred())

		content, err := os.ReadFile(filepath.Join(rootPath, "avatars", "some-user-id_cat.png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal([]byte("second")))
	})

	It("deletes a written file", func() {
		err := store.WriteFile(context.Background(), "avatars/some-user-id_cat.png", []byte("cat-image-bytes"))
		Expect(err).NotTo(HaveOccurred())

		err = store.DeleteFile(context.Background(), "avatars/some-user-id_cat.png")
		Expect(err).NotTo(HaveOccurred())

		_, err = os.Stat(filepath.Join(rootPath, "avatars", "some-user-id_cat.png"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("fails to delete a file that was never written", func() {
		err := store.DeleteFile(context.Background(), "avatars/missing.png")
		Expect(err).To(HaveOccurred())
	})
})
