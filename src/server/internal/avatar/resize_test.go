package avatar_test

import (
	"bytes"
	"image"
	"image/color"

	"github.com/accountkeeper/accounts-be/src/server/internal/avatar"
	"github.com/disintegration/imaging"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func encodedImage(width int, height int, format imaging.Format) []byte {
	img := imaging.New(width, height, color.White)

	output := bytes.Buffer{}
	err := imaging.Encode(&output, img, format)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	return output.Bytes()
}

var _ = Describe("ImagingResizer", func() {
	var resizer avatar.ImagingResizer

	decode := func(content []byte) image.Image {
		img, err := imaging.Decode(bytes.NewReader(content))
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		return img
	}

	It("squares a landscape image to the avatar size", func() {
		resized, err := resizer.ResizeSquare(encodedImage(800, 400, imaging.PNG), "photo.png", avatar.Size)
		Expect(err).NotTo(HaveOccurred())

		bounds := decode(resized).Bounds()
		Expect(bounds.Dx()).To(Equal(avatar.Size))
		Expect(bounds.Dy()).To(Equal(avatar.Size))
	})

	It("squares a portrait image to the avatar size", func() {
		resized, err := resizer.ResizeSquare(encodedImage(300, 900, imaging.JPEG), "photo.jpg", avatar.Size)
		Expect(err).NotTo(HaveOccurred())

		bounds := decode(resized).Bounds()
		Expect(bounds.Dx()).To(Equal(avatar.Size))
		Expect(bounds.Dy()).To(Equal(avatar.Size))
	})

	It("upscales an image smaller than the avatar size", func() {
		resized, err := resizer.ResizeSquare(encodedImage(100, 100, imaging.PNG), "photo.png", avatar.Size)
		Expect(err).NotTo(HaveOccurred())

		bounds := decode(resized).Bounds()
		Expect(bounds.Dx()).To(Equal(avatar.Size))
		Expect(bounds.Dy()).To(Equal(avatar.Size))
	})

	It("rejects a filename with no known image extension", func() {
		_, err := resizer.ResizeSquare(encodedImage(100, 100, imaging.PNG), "photo.txt", avatar.Size)
		Expect(err).To(HaveOccurred())
	})

	It("rejects content that isn't an image", func() {
		_, err := resizer.ResizeSquare([]byte("not-an-image"), "photo.png", avatar.Size)
		Expect(err).To(HaveOccurred())
	})
})
