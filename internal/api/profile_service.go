package api

import (
	"context"
	"encoding/json"
	"fmt"
)

type ProfileService struct {
	client *Client
}

func NewProfileService(client *Client) *ProfileService {
	return &ProfileService{client: client}
}

// GetProfile 获取当前登录用户
func (s *ProfileService) GetProfile(ctx context.Context) (*Profile, error) {
	resp, err := s.client.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}
	return decodeProfile(resp.Body)
}

// decodeProfile 兼容两种返回：直接返回用户对象，或 {code, message, data} 信封
func decodeProfile(body []byte) (*Profile, error) {
	var envelope struct {
		Profile
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("解析用户信息失败: %w", err)
	}

	profile := envelope.Profile
	if profile.empty() && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, &profile); err != nil {
			return nil, fmt.Errorf("解析用户信息失败: %w", err)
		}
	}
	return &profile, nil
}
