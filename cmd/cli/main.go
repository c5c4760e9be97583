package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	flag "github.com/spf13/pflag"

	"github.com/hoyle1974/window/archive"
	"github.com/hoyle1974/window/storage"
)

func main() {
	source := flag.StringP("source", "s", "disk", "The storage to work against (memory|disk|s3)")
	uri := flag.StringP("uri", "u", ".", "The directory (disk) or bucket name (s3)")
	accessKey := flag.String("access-key", "", "Static S3 access key (default: ambient AWS config)")
	secretKey := flag.String("secret-key", "", "Static S3 secret key")

	flag.Parse()

	ctx := context.Background()

	var store storage.System
	switch *source {
	case "memory":
		store = storage.NewMemoryStorage()
	case "disk":
		store = storage.NewDiskStorage(*uri)
	case "s3":
		opts := []func(*config.LoadOptions) error{}
		if *accessKey != "" {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(*accessKey, *secretKey, "")))
		}
		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		store = storage.NewS3Storage(s3.NewFromConfig(cfg), *uri)
	default:
		fmt.Printf("unsupported storage system: %s\n", *source)
		os.Exit(1)
	}

	arc := archive.New(store)

	names, err := arc.Names(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Source: %s\n", *source)
	fmt.Printf("URI: %s\n", *uri)
	fmt.Printf("Window sets: %d\n", len(names))

	for _, name := range names {
		l, err := arc.Load(ctx, name)
		if err != nil {
			fmt.Printf("	%s: error: %v\n", name, err)
			continue
		}
		v := l.Validity()
		fmt.Printf("%s  valid over [%v - %v]\n", name, v.Start().UTC(), v.End().UTC())
		for _, span := range l.Spans() {
			fmt.Printf("	[%v - %v]  %v\n", span.Start().UTC(), span.End().UTC(), span.Duration())
		}
	}
}
