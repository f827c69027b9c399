package api

import (
	"hospital/internal/storage"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountLocalFiles 本地存储时通过公开前缀直接提供附件下载；
// 公开地址是外部 URL 时由对象存储或 CDN 提供
func (h *HTTPHandler) mountLocalFiles(r *gin.Engine) {
	localProvider, ok := h.storage.(storage.LocalBaseDirProvider)
	if !ok {
		return
	}
	base := h.storagePublicBase
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return
	}
	r.Static(base, localProvider.LocalBaseDir())
}
