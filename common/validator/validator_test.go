package validator

import (
	"strings"
	"testing"

	"gotest.tools/assert"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/apirequests"
)

func TestValidateRequest(t *testing.T) {
	ok := apirequests.ProductDetailRequest{Slug: "nang-hoa", Variant: "child"}
	assert.Assert(t, ValidateRequest(ok) == nil)

	bad := apirequests.ProductDetailRequest{Slug: "nang-hoa", Variant: "grandchild"}
	appErr := ValidateRequest(bad)
	assert.Assert(t, appErr != nil)
	assert.Equal(t, apierrors.ErrCodeRequestValidation, appErr.Code)
	assert.Assert(t, strings.Contains(appErr.Message, "Variant"))

	list := apirequests.ListProductsRequest{Sort: "rating"}
	assert.Assert(t, ValidateRequest(list) != nil)
}
