package phe

import (
	"github.com/sirupsen/logrus"

	"github.com/phe-go/phe/elgamal"
	"github.com/phe-go/phe/paillier"
	"github.com/phe-go/phe/prime"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
	prime.Logger = Logger
	paillier.Logger = Logger
	elgamal.Logger = Logger
}
