package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type E2EMatchFlowSuite struct {
	suite.Suite
}

func TestE2EMatchFlowSuite(t *testing.T) {
	suite.RunSuite(t, new(E2EMatchFlowSuite))
}

func (s *E2EMatchFlowSuite) TestPairAndMatch(t provider.T) {
	if os.Getenv("ENV") != "CI" {
		t.Skip("needs a running server, set ENV=CI")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	t.Require().NoError(run(ctx, baseURL()))
}
