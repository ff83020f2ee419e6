// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render fetches pages that only materialize their data after
// client-side JavaScript runs, using a headless browser with bot-detection
// countermeasures.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/stealth"
	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Fetcher returns the rendered HTML of a page.
type Fetcher interface {
	FetchRendered(ctx context.Context, url string) (string, error)
}

// Browser is a playwright-backed Fetcher. Create with StartBrowser and Close
// when finished.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// StartBrowser launches chromium and prepares a stealth page.
func StartBrowser(headless bool) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not launch playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	log.Info().Bool("Headless", headless).Str("BrowserVersion", browser.Version()).Msg("starting playwright")

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = buildUserAgent(browser)
	}
	log.Info().Str("UserAgent", userAgent).Msg("using user-agent")

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	page, err := stealthPage(browserContext)
	if err != nil {
		return nil, err
	}

	blockTrackers(page)

	return &Browser{pw: pw, browser: browser, context: browserContext, page: page}, nil
}

// FetchRendered navigates to the url, waits for the network to go idle, and
// returns the rendered document.
func (myBrowser *Browser) FetchRendered(_ context.Context, url string) (string, error) {
	if _, err := myBrowser.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return "", fmt.Errorf("could not load %s: %w", url, err)
	}

	content, err := myBrowser.page.Content()
	if err != nil {
		return "", fmt.Errorf("could not read content of %s: %w", url, err)
	}

	return content, nil
}

// Close shuts down the browser and the playwright server.
func (myBrowser *Browser) Close() {
	log.Info().Msg("closing browser")
	if err := myBrowser.browser.Close(); err != nil {
		log.Error().Err(err).Msg("error encountered when closing browser")
	}

	if err := myBrowser.pw.Stop(); err != nil {
		log.Error().Err(err).Msg("error encountered when stopping playwright")
	}
}

// stealthPage creates a new playwright page with stealth js loaded to prevent bot detection
func stealthPage(browserContext playwright.BrowserContext) (playwright.Page, error) {
	page, err := browserContext.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	if err = page.AddInitScript(playwright.Script{
		Content: playwright.String(stealth.JS),
	}); err != nil {
		return nil, fmt.Errorf("could not load stealth mode: %w", err)
	}

	return page, nil
}

// buildUserAgent dynamically determines the user agent and removes the headless identifier
func buildUserAgent(browser playwright.Browser) string {
	browserContext, err := browser.NewContext()
	if err != nil {
		log.Error().Err(err).Msg("could not create context for building user agent")
		return ""
	}
	defer browserContext.Close()

	page, err := browserContext.NewPage()
	if err != nil {
		log.Error().Err(err).Msg("could not create page for building user agent")
		return ""
	}

	resp, err := page.Goto("https://playwright.dev", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		log.Error().Err(err).Str("Url", "https://playwright.dev").Msg("could not load page")
		return ""
	}

	headers, err := resp.Request().AllHeaders()
	if err != nil {
		log.Error().Err(err).Msg("could not load request headers")
		return ""
	}

	return strings.Replace(headers["user-agent"], "Headless", "", -1)
}

func blockTrackers(page playwright.Page) {
	// block a variety of domains that contain trackers and ads
	err := page.Route("**/*", func(route playwright.Route) {
		request := route.Request()
		if strings.Contains(request.URL(), "googletagservices.com") ||
			strings.Contains(request.URL(), "googlesyndication.com") ||
			strings.Contains(request.URL(), "facebook.com") ||
			strings.Contains(request.URL(), "moatpixel.com") ||
			strings.Contains(request.URL(), "moatads.com") ||
			strings.Contains(request.URL(), "adsystem.com") ||
			strings.Contains(request.URL(), "prebid") ||
			strings.Contains(request.URL(), "sodar") ||
			strings.Contains(request.URL(), "auction") ||
			strings.Contains(request.URL(), "rubiconproject.com") ||
			strings.Contains(request.URL(), "pubmatic.com") ||
			strings.Contains(request.URL(), "amazon-adsystem.com") ||
			strings.Contains(request.URL(), "adnxs.com") ||
			strings.Contains(request.URL(), "doubleclick.net") ||
			strings.Contains(request.URL(), "bidswitch.net") ||
			strings.Contains(request.URL(), "casalemedia.com") ||
			strings.Contains(request.URL(), "eyeota.net") {
			if err := route.Abort("failed"); err != nil {
				log.Error().Err(err).Msg("failed blocking route")
			}
			return
		}

		if err := route.Continue(); err != nil {
			log.Error().Err(err).Msg("failed continuing route")
		}
	})

	if err != nil {
		log.Error().Err(err).Msg("page route errored")
	}
}
