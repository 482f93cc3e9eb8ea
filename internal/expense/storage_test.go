package expense

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		It("should write the file and return its path", func() {
			savedPath, err := storage.Save("receipt.png", []byte("file content"))
			Expect(err).NotTo(HaveOccurred())
			Expect(savedPath).To(Equal("receipt.png"))
			Expect(filepath.Join(tmpDir, "receipt.png")).To(BeAnExistingFile())
		})

		When("the name contains a path separator", func() {
			It("should reject it", func() {
				_, err := storage.Save("../escape.png", []byte("file content"))
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("invalid receipt filename"))
			})
		})

		When("the name is empty", func() {
			It("should reject it", func() {
				_, err := storage.Save("", []byte("file content"))
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Get", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("receipt.png", []byte("file content"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the data", func() {
				data, err := storage.Get("receipt.png")
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("file content"))
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				_, err := storage.Get("missing.png")
				Expect(err).To(HaveOccurred())
			})
		})

		When("the path tries to escape the storage root", func() {
			It("should reject it", func() {
				_, err := storage.Get("../../etc/passwd")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("invalid receipt filename"))
			})
		})
	})

	Describe("Delete", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("receipt.png", []byte("file content"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove it", func() {
				Expect(storage.Delete("receipt.png")).To(Succeed())
				Expect(filepath.Join(tmpDir, "receipt.png")).NotTo(BeAnExistingFile())
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				Expect(storage.Delete("missing.png")).To(HaveOccurred())
			})
		})
	})
})
