//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	pacttest "github.com/Apurer/go-storefront-api/test/pact"
)

type productPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	InStock  int    `json:"inStock"`
}

type problemDetail struct {
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func TestStorefrontWebContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	productMatcher := matchers.Map{
		"id":       matchers.Term(pacttest.ExistingProductID, "^[0-9a-f-]{36}$"),
		"name":     matchers.Like(pacttest.ProductName),
		"category": matchers.Like(pacttest.ProductCategory),
		"price":    matchers.Term(pacttest.ProductPrice, "^\\d+\\.\\d{2}$"),
		"inStock":  matchers.Like(10),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to list products in a category").
		WithRequest("GET", "/api/products", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("category", matchers.S(pacttest.ProductCategory))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"products": matchers.EachLike(productMatcher, 1)})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to fetch an existing product").
		WithRequest("GET", "/api/products/"+pacttest.ExistingProductID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"product": productMatcher})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", "/api/products/"+pacttest.MissingProductID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"status":  matchers.Like(http.StatusNotFound),
				"message": matchers.S("Product not found"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateUserExists).
		UponReceiving("a login with a wrong password").
		WithRequest("POST", "/api/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"username": matchers.S(pacttest.UserUsername),
				"password": matchers.S("wrong-pass"),
			})
		}).
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"status":  matchers.Like(http.StatusUnauthorized),
				"message": matchers.S("Invalid username or password"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a cart request without a session").
		WithRequest("GET", "/api/cart").
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.S("Authentication required"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		products, err := client.ListProducts(ctx, pacttest.ProductCategory)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if len(products) == 0 {
			return fmt.Errorf("expected at least one product")
		}

		product, err := client.GetProduct(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product.ID != pacttest.ExistingProductID {
			return fmt.Errorf("expected product %s, got %+v", pacttest.ExistingProductID, product)
		}

		if err := expectStatus(client.GetProductErr(ctx, pacttest.MissingProductID), http.StatusNotFound); err != nil {
			return err
		}
		if err := expectStatus(client.Login(ctx, pacttest.UserUsername, "wrong-pass"), http.StatusUnauthorized); err != nil {
			return err
		}
		return expectStatus(client.GetCart(ctx), http.StatusUnauthorized)
	})
	require.NoError(t, err)
}

func expectStatus(err error, status int) error {
	apiErr, ok := err.(apiError)
	if !ok {
		return fmt.Errorf("expected api error with status %d, got %v", status, err)
	}
	if apiErr.status != status {
		return fmt.Errorf("expected %d, got %d", status, apiErr.status)
	}
	return nil
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *storefrontClient) ListProducts(ctx context.Context, category string) ([]productPayload, error) {
	var body struct {
		Products []productPayload `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products?category="+category, nil, &body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

func (c *storefrontClient) GetProduct(ctx context.Context, id string) (*productPayload, error) {
	var body struct {
		Product productPayload `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &body); err != nil {
		return nil, err
	}
	return &body.Product, nil
}

func (c *storefrontClient) GetProductErr(ctx context.Context, id string) error {
	_, err := c.GetProduct(ctx, id)
	return err
}

func (c *storefrontClient) Login(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/login", map[string]string{"username": username, "password": password}, nil)
}

func (c *storefrontClient) GetCart(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/cart", nil, nil)
}

func (c *storefrontClient) do(ctx context.Context, method, path string, payload, out any) error {
	var reader *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, message: problem.Message}
}
