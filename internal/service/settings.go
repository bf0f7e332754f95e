package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
)

const maxSettingKeyLen = 64

// SettingsService 进程级 key/value 配置
type SettingsService struct {
	repo     repository.SettingRepository
	olympics *OlympicsService
	logger   *logrus.Logger
}

func NewSettingsService(repo repository.SettingRepository, olympics *OlympicsService, logger *logrus.Logger) *SettingsService {
	return &SettingsService{repo: repo, olympics: olympics, logger: logger}
}

func (s *SettingsService) GetSettings(ctx context.Context) (map[string]string, error) {
	list, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取设置失败: %w", err)
	}
	out := make(map[string]string, len(list))
	for _, st := range list {
		out[st.Key] = st.Value
	}
	return out, nil
}

// UpdateSettings 逐项 upsert。default_timezone 必须是可加载的 IANA 时区；
// active_olympics_id 走 Activate，保证 is_active 标记同步
func (s *SettingsService) UpdateSettings(ctx context.Context, values map[string]string) (map[string]string, error) {
	normalized := make(map[string]string, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		key := strings.TrimSpace(k)
		if key == "" || len(key) > maxSettingKeyLen {
			return nil, invalid("key", "must be 1-%d characters", maxSettingKeyLen)
		}
		if _, dup := normalized[key]; dup {
			return nil, invalid("key", "duplicate key %q", key)
		}
		normalized[key] = v
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := normalized[k]
		if k == model.SettingDefaultTimezone {
			if _, err := time.LoadLocation(v); err != nil || v == "" {
				return nil, invalid(model.SettingDefaultTimezone, "unknown time zone %q", v)
			}
		}
		if k == model.SettingActiveOlympicsID {
			if _, err := strconv.ParseUint(v, 10, 64); err != nil {
				return nil, invalid(model.SettingActiveOlympicsID, "must be an olympics id")
			}
		}
	}

	for _, k := range keys {
		v := normalized[k]
		if k == model.SettingActiveOlympicsID {
			id, _ := strconv.ParseUint(v, 10, 64)
			if _, err := s.olympics.Activate(ctx, id); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.repo.PutSetting(ctx, k, v); err != nil {
			return nil, fmt.Errorf("写入设置 %s 失败: %w", k, err)
		}
	}
	s.logger.WithField("keys", keys).Info("设置已更新")
	return s.GetSettings(ctx)
}
