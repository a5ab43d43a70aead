// Package help holds static help text printed by the CLI.
package help

const ColdstartYAML = `# page-visuals Quick Start

asset_kinds:
  icon: "Favicon-domain assets: link tags, web app manifest, root guesses"
  social: "Preview images: og:image, twitter:image, JSON-LD structured data"

commands:
  basic_resolve: |
    page-visuals resolve --urls "https://example.com"

  icons_only: |
    page-visuals resolve --urls "example.com,example.org" --assets icon --size 128

  save_assets: |
    page-visuals resolve --urls "https://example.com" --output-dir assets

  with_caller_default: |
    page-visuals resolve --urls "https://example.com" --default-image "https://cdn.example.com/placeholder.png"

  json_summary: |
    page-visuals resolve --urls "https://example.com" --format json --quiet

  history: |
    page-visuals history --limit 20
    page-visuals history --stats

resolution_order:
  icon:
    - "link rel=icon / apple-touch-icon tags (scored by size, format, rel)"
    - "{origin}/manifest.json icons[]"
    - "root guesses: /favicon.ico, /apple-touch-icon.png"
    - "external favicon service (fallback)"
    - "--default-image, then configured default_image_url"
  social:
    - "og:image / og:image:secure_url meta tags"
    - "twitter:image meta tags"
    - "JSON-LD image properties"
    - "same fallback cascade as icons"

config:
  file: "config.yaml in the working directory (optional)"
  env_overrides:
    - "PV_USER_AGENT"
    - "PV_BROWSER_USER_AGENT"
    - "PV_REQUEST_TIMEOUT_MS"
    - "PV_MAX_IMAGE_SIZE"
    - "PV_USE_FALLBACK_API"
    - "PV_FALLBACK_API_TEMPLATE"
    - "PV_DEFAULT_IMAGE_URL"

notes:
  - "A caller-supplied --default-image is authoritative: if it fails, the run reports an error instead of substituting another image"
  - "Results are logged to page-visuals.db next to the binary (disable with --no-history)"
  - "Exit code 1 when any URL failed to resolve"
`
