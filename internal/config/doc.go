// Package config handles configuration loading for support-gateway.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion. The file is optional: every setting has a default, and the
// common deployment knobs (PORT, GROQ_API_KEY, DATABASE_PATH, APP_ENV)
// override it directly from the environment.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from SUPPORT_GATEWAY_CONFIG environment variable
//  2. ./support-gateway.yaml (current directory)
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	llm:
//	  api_key: "${GROQ_API_KEY}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: ":3001"
//	  environment: "development"  # enables error detail in 500 bodies
//
// Database:
//
//	database:
//	  path: "data/support-gateway.db"
//
// Completion provider:
//
//	llm:
//	  api_key: "${GROQ_API_KEY}"   # empty disables completion (fallback replies)
//	  base_url: "https://api.groq.com/openai/v1"
//	  model: "llama-3.3-70b-versatile"
//	  temperature: 0.7
//	  max_tokens: 500
//	  history_window: 10
//
// Chat limits:
//
//	chat:
//	  max_message_length: 2000
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
