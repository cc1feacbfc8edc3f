package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// getBaseURL returns the base URL for API calls.
// Uses VISASLOTS_BASE_URL env var if set (for container tests),
// otherwise defaults to localhost:3000.
func getBaseURL() string {
	if url := os.Getenv("VISASLOTS_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

// httpClient creates an HTTP client with sensible defaults.
func httpClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
	}
}

// doRequest performs an HTTP request and returns the response.
func doRequest(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(data)
	}

	url := getBaseURL() + path
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return httpClient().Do(req)
}

// parseResponse parses JSON response into target.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// cleanupTestData removes alerts created during the run.
func cleanupTestData(alertIDs []string) {
	for _, id := range alertIDs {
		_, _ = doRequest("DELETE", "/alerts/"+id, nil)
	}
}

var _ = Describe("HTTP Integration Tests", Ordered, func() {
	var (
		alertID         string
		createdAlertIDs []string
	)

	BeforeAll(func() {
		// Check if the server is reachable
		resp, err := doRequest("GET", "/health", nil)
		if err != nil {
			Skip(fmt.Sprintf("Server not reachable at %s: %v", getBaseURL(), err))
		}
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})

	AfterAll(func() {
		cleanupTestData(createdAlertIDs)
	})

	Describe("Health Check", func() {
		It("should return OK with a timestamp", func() {
			resp, err := doRequest("GET", "/health", nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["status"]).To(Equal("OK"))

			_, err = time.Parse(time.RFC3339, result["timestamp"].(string))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Alerts API", func() {
		It("should create an alert with Active as the default status", func() {
			payload := map[string]interface{}{
				"country":  "Integrationland",
				"city":     "Testville",
				"visaType": "Tourist",
			}

			resp, err := doRequest("POST", "/alerts", payload)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["message"]).To(Equal("Alert created successfully"))

			data, ok := result["data"].(map[string]interface{})
			Expect(ok).To(BeTrue())
			alertID = fmt.Sprintf("%.0f", data["id"].(float64))
			createdAlertIDs = append(createdAlertIDs, alertID)

			Expect(data["country"]).To(Equal("Integrationland"))
			Expect(data["city"]).To(Equal("Testville"))
			Expect(data["visaType"]).To(Equal("Tourist"))
			Expect(data["status"]).To(Equal("Active"))
		})

		It("should reject an invalid payload with field details", func() {
			payload := map[string]interface{}{
				"city":     "Nowhere",
				"visaType": "Diplomatic",
			}

			resp, err := doRequest("POST", "/alerts", payload)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["error"]).To(Equal("Validation failed"))

			details, ok := result["details"].([]interface{})
			Expect(ok).To(BeTrue())
			Expect(len(details)).To(Equal(2))
		})

		It("should find the alert via a case-insensitive country filter", func() {
			resp, err := doRequest("GET", "/alerts?country=integrationl", nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())

			data, ok := result["data"].([]interface{})
			Expect(ok).To(BeTrue())
			Expect(len(data)).To(BeNumerically(">=", 1))

			pagination := result["pagination"].(map[string]interface{})
			Expect(pagination["page"]).To(Equal(float64(1)))
			Expect(pagination["limit"]).To(Equal(float64(10)))
		})

		It("should update the alert status", func() {
			payload := map[string]interface{}{
				"status": "Booked",
			}

			resp, err := doRequest("PUT", "/alerts/"+alertID, payload)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["message"]).To(Equal("Alert updated successfully"))

			data := result["data"].(map[string]interface{})
			Expect(data["status"]).To(Equal("Booked"))
			Expect(data["country"]).To(Equal("Integrationland"))
		})

		It("should reject an empty update payload", func() {
			resp, err := doRequest("PUT", "/alerts/"+alertID, map[string]interface{}{})
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["error"]).To(Equal("Validation failed"))
		})

		It("should reject a non-numeric alert id", func() {
			resp, err := doRequest("PUT", "/alerts/abc", map[string]interface{}{"status": "Booked"})
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["error"]).To(Equal("Invalid alert ID"))
		})

		It("should delete the alert and report not found afterwards", func() {
			resp, err := doRequest("DELETE", "/alerts/"+alertID, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["message"]).To(Equal("Alert deleted successfully"))

			resp, err = doRequest("DELETE", "/alerts/"+alertID, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

			var notFound map[string]interface{}
			Expect(parseResponse(resp, &notFound)).To(Succeed())
			Expect(notFound["error"]).To(Equal("Alert not found"))
		})
	})

	Describe("Unknown Routes", func() {
		It("should return a JSON 404", func() {
			resp, err := doRequest("GET", "/api/does-not-exist", nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

			var result map[string]interface{}
			Expect(parseResponse(resp, &result)).To(Succeed())
			Expect(result["error"]).To(Equal("Route not found"))
		})
	})
})
