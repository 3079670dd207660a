// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"time"
)

const FetchTimeout = time.Second * 10

// refreshWeather re-fetches the weather for the current record, if there is one.
func (s *Service) refreshWeather(ctx context.Context) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()

	if _, ok := s.ctrl.Current(); !ok {
		s.logger.Debug("no weather record to refresh yet")
		return
	}
	s.ctrl.Refresh(ctxFetch)
}
