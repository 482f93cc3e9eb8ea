package expense

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/omkar454/TSEC-HACKS-26/internal/analysis"
)

// newTestService wires a Service over the given mocks with a real pipeline
func newTestService(db *mockDB, storage *mockStorage, engine *mockEngine) *Service {
	model := analysis.NewCategoryModel(analysis.DefaultTrainingData)
	return NewService(db, engine, storage, analysis.NewPipeline(model))
}

// multipartUpload builds a multipart body with one file field
func multipartUpload(fieldName, filename string, data []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(data)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())
	return body, writer.FormDataContentType()
}

var _ = Describe("Server", func() {
	var (
		db          *mockDB
		storage     *mockStorage
		engine      *mockEngine
		service     *Service
		auth        BasicAuth
		server      *Server
		ghttpServer *ghttp.Server
	)

	setupServer := func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
		server = NewServerWithMux(service, auth, http.NewServeMux())
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	}

	BeforeEach(func() {
		db = newMockDB()
		storage = newMockStorage()
		engine = newMockEngine()
		service = newTestService(db, storage, engine)
		auth = BasicAuth{}
		setupServer()
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	Describe("handleHealth", func() {
		It("should return status OK", func() {
			resp, err := http.Get(ghttpServer.URL() + "/health")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			resp.Body.Close()
		})
	})

	Describe("handleAnalyzeReceipt", func() {
		When("a valid image is uploaded", func() {
			It("should return the recorded expense", func() {
				body, contentType := multipartUpload("file", "receipt.png", testImagePNG())
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusCreated))

				var exp Expense
				Expect(json.NewDecoder(resp.Body).Decode(&exp)).To(Succeed())
				Expect(exp.ID).NotTo(BeEmpty())
				Expect(exp.Analysis.Vendor).To(Equal("Uber Technologies"))
				Expect(exp.Analysis.Category).To(Equal("Travel"))
				Expect(exp.Analysis.Confidence).To(Equal(0.95))
			})
		})

		When("no file field is present", func() {
			It("should return status Bad Request", func() {
				body, contentType := multipartUpload("wrong", "receipt.png", testImagePNG())
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

				var errBody map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&errBody)).To(Succeed())
				Expect(errBody).To(HaveKey("error"))
			})
		})

		When("the upload is not an image", func() {
			It("should return status Internal Server Error", func() {
				body, contentType := multipartUpload("file", "notes.txt", []byte("plain text"))
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			})
		})
	})

	Describe("handleListExpenses", func() {
		When("expenses exist", func() {
			BeforeEach(func() {
				db.expenses["id1"] = &Expense{ID: "id1"}
				db.expenses["id2"] = &Expense{ID: "id2"}
			})

			It("should return all of them", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/expenses")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var expenses []*Expense
				Expect(json.NewDecoder(resp.Body).Decode(&expenses)).To(Succeed())
				Expect(expenses).To(HaveLen(2))
			})
		})

		When("no expenses exist", func() {
			It("should return an empty JSON array", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/expenses")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()

				var expenses []*Expense
				Expect(json.NewDecoder(resp.Body).Decode(&expenses)).To(Succeed())
				Expect(expenses).NotTo(BeNil())
				Expect(expenses).To(BeEmpty())
			})
		})
	})

	Describe("handleGetExpense", func() {
		BeforeEach(func() {
			db.expenses["id1"] = &Expense{ID: "id1"}
		})

		When("the expense exists", func() {
			It("should return it", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/expenses/id1")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var exp Expense
				Expect(json.NewDecoder(resp.Body).Decode(&exp)).To(Succeed())
				Expect(exp.ID).To(Equal("id1"))
			})
		})

		When("the expense does not exist", func() {
			It("should return status Not Found", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/expenses/missing")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
				resp.Body.Close()
			})
		})
	})

	Describe("handleGetReceiptFile", func() {
		BeforeEach(func() {
			db.expenses["id1"] = &Expense{ID: "id1", Filename: "id1_receipt.png", ContentType: "image/png"}
			storage.files["id1_receipt.png"] = []byte("image bytes")
		})

		It("should return the file with its content type", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/expenses/id1/file")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("image/png"))
		})
	})

	Describe("handleDeleteExpense", func() {
		BeforeEach(func() {
			db.expenses["id1"] = &Expense{ID: "id1", Filename: "id1_receipt.png"}
			storage.files["id1_receipt.png"] = []byte("data")
		})

		It("should return status No Content", func() {
			req, err := http.NewRequest("DELETE", ghttpServer.URL()+"/api/expenses/id1", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			resp.Body.Close()
			Expect(db.expenses).To(BeEmpty())
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "user", Password: "pass"}
			setupServer()
		})

		When("credentials are missing", func() {
			It("should return status Unauthorized", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/expenses")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
				resp.Body.Close()
			})
		})

		When("credentials are valid", func() {
			It("should allow the request", func() {
				req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/expenses", nil)
				Expect(err).NotTo(HaveOccurred())
				creds := base64.StdEncoding.EncodeToString([]byte("user:pass"))
				req.Header.Set("Authorization", "Basic "+creds)
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				resp.Body.Close()
			})
		})

		When("the health endpoint is hit", func() {
			It("should not require auth", func() {
				resp, err := http.Get(ghttpServer.URL() + "/health")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				resp.Body.Close()
			})
		})
	})
})
