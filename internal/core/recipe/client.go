package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cook-assistant/internal/infrastructure/config"
	"cook-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client Spoonacular API 客戶端
type Client struct {
	config *config.SpoonacularConfig
	client *resty.Client
}

// NewClient 創建 Spoonacular 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Spoonacular.BaseURL).
		SetTimeout(cfg.Spoonacular.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		config: &cfg.Spoonacular,
		client: client,
	}
}

// FindByIngredients 依食材搜尋食譜
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string) ([]Recipe, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ingredients":  strings.Join(ingredients, ","),
			"number":       strconv.Itoa(c.config.Number),
			"ranking":      strconv.Itoa(c.config.Ranking), // 2 = 最大化已用食材
			"ignorePantry": strconv.FormatBool(c.config.IgnorePantry),
			"apiKey":       c.config.APIKey,
		}).
		Get("/recipes/findByIngredients")

	if err != nil {
		return nil, fmt.Errorf("failed to send request to Spoonacular: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("Spoonacular API returned status %d", resp.StatusCode())
	}

	var recipes []Recipe
	if err := common.ParseJSONBytes(resp.Body(), &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse Spoonacular response: %w", err)
	}

	return recipes, nil
}

// Information 取得單一食譜的詳細資訊（含 extendedIngredients）
func (c *Client) Information(ctx context.Context, id int64) (*Recipe, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"includeNutrition": "false",
			"apiKey":           c.config.APIKey,
		}).
		Get(fmt.Sprintf("/recipes/%d/information", id))

	if err != nil {
		return nil, fmt.Errorf("failed to send request to Spoonacular: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("Spoonacular API returned status %d", resp.StatusCode())
	}

	var result Recipe
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Spoonacular response: %w", err)
	}

	return &result, nil
}
