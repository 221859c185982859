// Package config provides configuration parsing for vtree.
//
// The configuration is stored in vtree.json in the working directory or one
// of its parents. This package handles loading, saving, and validating
// configuration. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vtree"
//	  },
//	  "tracing": {
//	    "enabled": false
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "watch": {
//	    "debounce": "100ms",
//	    "ignore": [".*", "*~"]
//	  },
//	  "s3": {
//	    "region": "eu-west-1",
//	    "endpoint": "http://localhost:9000",
//	    "pathStyle": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
